package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	occupied := OccupiedSet([]string{"vip-1-1", "vip-1-2"}, []string{"general-3-7"})

	assert.False(t, IsAvailable("vip-1-1", occupied))
	assert.False(t, IsAvailable("general-3-7", occupied))
	assert.True(t, IsAvailable("vip-1-3", occupied))
}

func TestIsAvailable_EmptySet(t *testing.T) {
	assert.True(t, IsAvailable("vip-1-1", OccupiedSet()))
	assert.True(t, IsAvailable("", OccupiedSet()))
}

func TestSeatMap_IsBlocked(t *testing.T) {
	m := &SeatMap{
		BlockedSeats:    []string{"vip-1-1"},
		BlockedSections: []string{"balcony"},
	}

	tests := []struct {
		name   string
		seatID string
		want   bool
	}{
		{"directly blocked seat", "vip-1-1", true},
		{"seat in blocked section", "balcony-2-5", true},
		{"unblocked seat", "vip-1-2", false},
		{"malformed locator matches nothing", "vip11", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.IsBlocked(tt.seatID))
		})
	}
}

func TestSeatMap_NilAndEmpty(t *testing.T) {
	var m *SeatMap
	assert.False(t, m.IsBlocked("vip-1-1"))
	assert.True(t, m.IsEmpty())
	assert.True(t, (&SeatMap{}).IsEmpty())
	assert.False(t, (&SeatMap{BlockedSections: []string{"vip"}}).IsEmpty())
}

func TestSeatMap_BlockedSeatIDs(t *testing.T) {
	sections := []Section{
		{ID: "palco", Rows: 2, SeatsPerRow: 2},
		{ID: "vip", Rows: 10, SeatsPerRow: 10},
	}

	m := &SeatMap{
		BlockedSeats:    []string{"vip-1-9"},
		BlockedSections: []string{"palco"},
	}

	ids := m.BlockedSeatIDs(sections)
	assert.ElementsMatch(t, []string{"vip-1-9", "palco-1-1", "palco-1-2", "palco-2-1", "palco-2-2"}, ids)
}

func TestSeatMap_BlockedSeatIDs_UnknownSectionNotExpanded(t *testing.T) {
	m := &SeatMap{BlockedSections: []string{"desconocida"}}

	assert.Empty(t, m.BlockedSeatIDs([]Section{{ID: "vip", Rows: 2, SeatsPerRow: 2}}))
}

func TestSeatMap_BlockedSeatIDs_EmptyMap(t *testing.T) {
	var m *SeatMap
	assert.Nil(t, m.BlockedSeatIDs(nil))
	assert.Nil(t, (&SeatMap{}).BlockedSeatIDs(nil))
}

func TestSectionOf(t *testing.T) {
	assert.Equal(t, "vip", SectionOf("vip-1-1"))
	assert.Equal(t, "", SectionOf("vip11"))
	assert.Equal(t, "", SectionOf("-1-1"))
}

func TestSeatID(t *testing.T) {
	assert.Equal(t, "vip-1-3", SeatID("vip", "1", "3"))
}
