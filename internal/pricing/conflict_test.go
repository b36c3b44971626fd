package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConflicts(t *testing.T) {
	at := func(value string) time.Time {
		ts, err := time.Parse(time.RFC3339, value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		return ts
	}

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"one hour apart same day", "2025-12-31T20:00:00Z", "2025-12-31T21:00:00Z", true},
		{"six hours apart same day", "2025-12-31T14:00:00Z", "2025-12-31T20:00:00Z", false},
		{"identical instants", "2025-12-31T20:00:00Z", "2025-12-31T20:00:00Z", true},
		{"exactly four hours apart", "2025-12-31T12:00:00Z", "2025-12-31T16:00:00Z", false},
		{"just under four hours apart", "2025-12-31T12:00:00Z", "2025-12-31T15:59:59Z", true},
		{"different days close across midnight", "2025-12-31T23:30:00Z", "2026-01-01T00:30:00Z", false},
		{"order does not matter", "2025-12-31T21:00:00Z", "2025-12-31T20:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(at(tt.a), at(tt.b)))
		})
	}
}
