package events

import "time"

// State is the lifecycle state of an event. Transitions only move
// forward (proximo -> activo -> finalizado); cancellation is an
// explicit admin action, terminal, and never derived by the sweep.
type State string

const (
	StateUpcoming  State = "proximo"
	StateActive    State = "activo"
	StateFinished  State = "finalizado"
	StateCancelled State = "cancelado"
)

func IsValidState(state string) bool {
	switch State(state) {
	case StateUpcoming, StateActive, StateFinished, StateCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further automatic transition applies.
func (s State) IsTerminal() bool {
	return s == StateFinished || s == StateCancelled
}

// Classify derives the state an event with the given date should carry
// at instant now. Cancelled events are never reclassified; callers
// guard for that.
func Classify(now, date time.Time) State {
	today, tomorrow := SweepWindow(now)
	switch {
	case date.Before(today):
		return StateFinished
	case date.Before(tomorrow):
		return StateActive
	default:
		return StateUpcoming
	}
}

// SweepWindow returns the start of the current calendar day in now's
// location and the start of the next one.
func SweepWindow(now time.Time) (today, tomorrow time.Time) {
	year, month, day := now.Date()
	today = time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	tomorrow = today.AddDate(0, 0, 1)
	return today, tomorrow
}
