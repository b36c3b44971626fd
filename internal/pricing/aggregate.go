package pricing

import (
	"fmt"
	"strconv"
)

// PricedSeat is one selected seat with its captured price. A nil price
// means the seat was selected without a resolved price yet and counts
// as zero in totals.
type PricedSeat struct {
	ID        string   `json:"id"`
	SectionID string   `json:"section_id"`
	Row       string   `json:"row"`
	Seat      string   `json:"seat"`
	Price     *float64 `json:"price,omitempty"`
}

// Total sums the prices of a seat selection. An empty selection totals
// zero.
func Total(seats []PricedSeat) float64 {
	var sum float64
	for _, s := range seats {
		if s.Price != nil {
			sum += *s.Price
		}
	}
	return sum
}

// MinPrice returns the lowest price reachable under the configuration.
// Without section pricing this is the base price. Otherwise the minimum
// is taken over every row override and section default across all
// sections; a section with neither contributes nothing, and an
// all-empty section list falls back to the base price.
func MinPrice(cfg PriceConfig) float64 {
	min, _, ok := scanSectionPrices(cfg)
	if !ok {
		return cfg.BasePrice
	}
	return min
}

// MaxPrice is the counterpart of MinPrice for the highest price.
func MaxPrice(cfg PriceConfig) float64 {
	_, max, ok := scanSectionPrices(cfg)
	if !ok {
		return cfg.BasePrice
	}
	return max
}

// PriceRangeLabel formats the price range for display: a single value
// when min and max coincide, otherwise "min–max", prefixed with the
// currency symbol.
func PriceRangeLabel(cfg PriceConfig, currency string) string {
	min, max := MinPrice(cfg), MaxPrice(cfg)
	if min == max {
		return currency + formatAmount(min)
	}
	return fmt.Sprintf("%s%s–%s%s", currency, formatAmount(min), currency, formatAmount(max))
}

func scanSectionPrices(cfg PriceConfig) (min, max float64, ok bool) {
	if !cfg.UsesSectionPricing {
		return 0, 0, false
	}

	consider := func(price float64) {
		if !ok {
			min, max, ok = price, price, true
			return
		}
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}

	for _, section := range cfg.Sections {
		for _, rp := range section.RowPricing {
			consider(rp.Price)
		}
		if section.DefaultPrice != nil {
			consider(*section.DefaultPrice)
		}
	}

	return min, max, ok
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
