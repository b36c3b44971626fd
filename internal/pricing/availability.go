package pricing

import (
	"strconv"
	"strings"
)

// SeatMap is the per-event block configuration. A seat is blocked when
// its id is listed directly or its section is blocked as a whole.
type SeatMap struct {
	BlockedSeats    []string `json:"blocked_seats"`
	BlockedSections []string `json:"blocked_sections"`
}

// IsAvailable reports whether a seat may be selected. It is false iff
// the seat id is a member of the occupied set. The caller assembles the
// set beforehand from paid/pending tickets and the event's seat map.
func IsAvailable(seatID string, occupied map[string]struct{}) bool {
	_, taken := occupied[seatID]
	return !taken
}

// IsBlocked reports whether the seat id is blocked, either directly or
// through its section.
func (m *SeatMap) IsBlocked(seatID string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.BlockedSeats {
		if s == seatID {
			return true
		}
	}
	sectionID := SectionOf(seatID)
	for _, s := range m.BlockedSections {
		if s == sectionID {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the seat map carries no block rules at all.
func (m *SeatMap) IsEmpty() bool {
	return m == nil || (len(m.BlockedSeats) == 0 && len(m.BlockedSections) == 0)
}

// BlockedSeatIDs expands the block configuration into concrete seat
// ids: the directly blocked seats plus every seat of each blocked
// section, derived from the section's rows × seats-per-row grid.
// Sections without grid dimensions contribute no expansion; their
// seats are still rejected through IsBlocked.
func (m *SeatMap) BlockedSeatIDs(sections []Section) []string {
	if m.IsEmpty() {
		return nil
	}

	ids := make([]string, 0, len(m.BlockedSeats))
	ids = append(ids, m.BlockedSeats...)

	for _, sectionID := range m.BlockedSections {
		section := findSection(sections, sectionID)
		if section == nil {
			continue
		}
		for row := 1; row <= section.Rows; row++ {
			for seat := 1; seat <= section.SeatsPerRow; seat++ {
				ids = append(ids, SeatID(sectionID, strconv.Itoa(row), strconv.Itoa(seat)))
			}
		}
	}
	return ids
}

// SectionOf extracts the section id from a sectionId-row-seat locator.
// A locator without a delimiter yields the empty string, which matches
// no block rule.
func SectionOf(seatID string) string {
	idx := strings.Index(seatID, "-")
	if idx < 0 {
		return ""
	}
	return seatID[:idx]
}

// SeatID builds the composite locator for a seat.
func SeatID(sectionID, row, seat string) string {
	return sectionID + "-" + row + "-" + seat
}

// OccupiedSet builds a membership set from seat id slices.
func OccupiedSet(groups ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range groups {
		for _, id := range group {
			set[id] = struct{}{}
		}
	}
	return set
}
