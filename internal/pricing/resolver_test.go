package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func sectionedConfig() PriceConfig {
	return PriceConfig{
		BasePrice:          50,
		UsesSectionPricing: true,
		Sections: []Section{
			{
				ID:           "vip",
				Capacity:     40,
				Rows:         4,
				SeatsPerRow:  10,
				DefaultPrice: ptr(100),
				RowPricing: []RowPrice{
					{Row: "1", Price: 80},
					{Row: "2", Price: 120},
				},
			},
			{
				ID:          "general",
				Capacity:    200,
				Rows:        20,
				SeatsPerRow: 10,
			},
		},
	}
}

func TestResolvePrice_FlatPricing(t *testing.T) {
	cfg := PriceConfig{BasePrice: 25}

	assert.Equal(t, 25.0, ResolvePrice(cfg, "vip", "1"))
	assert.Equal(t, 25.0, ResolvePrice(cfg, "", ""))
	assert.Equal(t, 25.0, ResolvePrice(cfg, "nope", "99"))
}

func TestResolvePrice_SectionPricing(t *testing.T) {
	cfg := sectionedConfig()

	tests := []struct {
		name      string
		sectionID string
		row       string
		want      float64
	}{
		{"row override wins over section default", "vip", "1", 80},
		{"second row override", "vip", "2", 120},
		{"row without override uses section default", "vip", "3", 100},
		{"section without default falls back to base", "general", "5", 50},
		{"unknown section falls back to base", "balcony", "1", 50},
		{"unknown row in section with default", "vip", "999", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePrice(cfg, tt.sectionID, tt.row))
		})
	}
}

func TestResolvePrice_ZeroDefaultPriceIsHonored(t *testing.T) {
	cfg := PriceConfig{
		BasePrice:          50,
		UsesSectionPricing: true,
		Sections: []Section{
			{ID: "free", DefaultPrice: ptr(0)},
		},
	}

	assert.Equal(t, 0.0, ResolvePrice(cfg, "free", "1"))
}

func TestApplyMultiplier(t *testing.T) {
	tests := []struct {
		name       string
		base       float64
		multiplier *float64
		want       float64
	}{
		{"nil multiplier defaults to 1.0", 100, nil, 100},
		{"rounds half up", 33.33, ptr(1.5), 50},
		{"rounds down below half", 10, ptr(1.04), 10},
		{"exact product untouched", 20, ptr(2), 40},
		{"zero multiplier", 99, ptr(0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyMultiplier(tt.base, tt.multiplier))
		})
	}
}
