// Package pricing implements the seat pricing and availability engine.
// Every function here is pure and performs no I/O; lookups never fail,
// they degrade to a documented fallback so a purchase flow is never blocked.
package pricing

import "math"

// RowPrice overrides the section default price for a single row.
type RowPrice struct {
	Row   string  `json:"row"`
	Price float64 `json:"price"`
}

// Section is a named subdivision of an event's venue with its own
// capacity and pricing rules.
type Section struct {
	ID           string     `json:"id"`
	Name         string     `json:"name,omitempty"`
	Capacity     int        `json:"capacity"`
	Rows         int        `json:"rows"`
	SeatsPerRow  int        `json:"seats_per_row"`
	DefaultPrice *float64   `json:"default_price,omitempty"`
	Multiplier   *float64   `json:"multiplier,omitempty"`
	RowPricing   []RowPrice `json:"row_pricing,omitempty"`
}

// PriceConfig is the pricing configuration of a single event.
type PriceConfig struct {
	BasePrice          float64
	UsesSectionPricing bool
	Sections           []Section
}

// ResolvePrice returns the price to charge for a seat in the given
// section and row.
//
// Resolution order: row override, section default, event base price.
// An unknown section or row is not an error; resolution always falls
// back to the base price.
func ResolvePrice(cfg PriceConfig, sectionID, row string) float64 {
	if !cfg.UsesSectionPricing {
		return cfg.BasePrice
	}

	section := findSection(cfg.Sections, sectionID)
	if section == nil {
		return cfg.BasePrice
	}

	for _, rp := range section.RowPricing {
		if rp.Row == row {
			return rp.Price
		}
	}

	if section.DefaultPrice != nil {
		return *section.DefaultPrice
	}

	return cfg.BasePrice
}

// ApplyMultiplier derives a section price from the base price and an
// optional multiplier, rounding half-up to the nearest whole amount.
// A nil multiplier means 1.0.
func ApplyMultiplier(base float64, multiplier *float64) float64 {
	m := 1.0
	if multiplier != nil {
		m = *multiplier
	}
	return math.Round(base * m)
}

func findSection(sections []Section, id string) *Section {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i]
		}
	}
	return nil
}
