package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketapp/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: time.Hour,
		},
	}
}

func signToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "7a6f3c1e-0000-0000-0000-000000000001",
		"email":   "admin@example.com",
		"role":    role,
		"exp":     time.Now().Add(cfg.JWT.ExpiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)
	return signed
}

func adminEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/admin/events", JWTAuthWithConfig(cfg), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return engine
}

func TestRequireAdmin_AllowsAdminRole(t *testing.T) {
	cfg := testJWTConfig()
	engine := adminEngine(cfg)

	req := httptest.NewRequest(http.MethodPost, "/admin/events", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, RoleAdmin))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireAdmin_RejectsUserRole(t *testing.T) {
	cfg := testJWTConfig()
	engine := adminEngine(cfg)

	req := httptest.NewRequest(http.MethodPost, "/admin/events", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg, "USER"))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuth_RejectsMissingAndMalformedTokens(t *testing.T) {
	cfg := testJWTConfig()
	engine := adminEngine(cfg)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
