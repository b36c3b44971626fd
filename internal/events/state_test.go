package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var noon = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestSweepWindow(t *testing.T) {
	today, tomorrow := SweepWindow(noon)

	assert.Equal(t, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), tomorrow)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want State
	}{
		{"yesterday is finished", noon.AddDate(0, 0, -1), StateFinished},
		{"last instant of yesterday is finished", time.Date(2025, time.June, 14, 23, 59, 59, 0, time.UTC), StateFinished},
		{"earlier today is active", time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC), StateActive},
		{"midnight today is active", time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), StateActive},
		{"later today is active", time.Date(2025, time.June, 15, 22, 0, 0, 0, time.UTC), StateActive},
		{"tomorrow is upcoming", noon.AddDate(0, 0, 1), StateUpcoming},
		{"midnight tomorrow is upcoming", time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), StateUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(noon, tt.date))
		})
	}
}

func TestStateHelpers(t *testing.T) {
	assert.True(t, IsValidState("proximo"))
	assert.True(t, IsValidState("cancelado"))
	assert.False(t, IsValidState("draft"))

	assert.False(t, StateUpcoming.IsTerminal())
	assert.False(t, StateActive.IsTerminal())
	assert.True(t, StateFinished.IsTerminal())
	assert.True(t, StateCancelled.IsTerminal())
}
