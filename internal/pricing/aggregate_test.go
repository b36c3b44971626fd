package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 0.0, Total([]PricedSeat{}))

	seats := []PricedSeat{
		{ID: "vip-1-1", Price: ptr(100)},
		{ID: "vip-1-2"}, // no price resolved, counts as zero
		{ID: "vip-1-3", Price: ptr(50)},
	}
	assert.Equal(t, 150.0, Total(seats))
}

func TestMinMaxPrice_FlatPricing(t *testing.T) {
	cfg := PriceConfig{BasePrice: 30}

	assert.Equal(t, 30.0, MinPrice(cfg))
	assert.Equal(t, 30.0, MaxPrice(cfg))
}

func TestMinMaxPrice_SectionPricing(t *testing.T) {
	cfg := sectionedConfig()
	// vip contributes 80, 120 and default 100; general contributes nothing.
	assert.Equal(t, 80.0, MinPrice(cfg))
	assert.Equal(t, 120.0, MaxPrice(cfg))
}

func TestMinMaxPrice_EmptySectionListFallsBack(t *testing.T) {
	cfg := PriceConfig{BasePrice: 45, UsesSectionPricing: true}

	assert.Equal(t, 45.0, MinPrice(cfg))
	assert.Equal(t, 45.0, MaxPrice(cfg))
}

func TestMinMaxPrice_SectionWithOnlyDefault(t *testing.T) {
	cfg := PriceConfig{
		BasePrice:          45,
		UsesSectionPricing: true,
		Sections: []Section{
			{ID: "a", DefaultPrice: ptr(60)},
			{ID: "b", DefaultPrice: ptr(90)},
		},
	}

	assert.Equal(t, 60.0, MinPrice(cfg))
	assert.Equal(t, 90.0, MaxPrice(cfg))
}

func TestPriceRangeLabel(t *testing.T) {
	flat := PriceConfig{BasePrice: 30}
	assert.Equal(t, "€30", PriceRangeLabel(flat, "€"))

	assert.Equal(t, "€80–€120", PriceRangeLabel(sectionedConfig(), "€"))

	cents := PriceConfig{BasePrice: 19.5}
	assert.Equal(t, "$19.5", PriceRangeLabel(cents, "$"))
}
