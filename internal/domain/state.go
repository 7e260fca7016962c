package domain

import "fmt"

// TimeState is the derived temporal classification of a booking relative to
// "now". It is independent of the persisted BookingStatus: a rejected booking
// in the past is both REJECTED (status) and PAST (time state).
type TimeState string

const (
	TimeStateAll     TimeState = "ALL"
	TimeStatePast    TimeState = "PAST"
	TimeStateCurrent TimeState = "CURRENT"
	TimeStateFuture  TimeState = "FUTURE"
)

// ParseTimeState parses a time state from its wire representation
func ParseTimeState(s string) (TimeState, error) {
	switch TimeState(s) {
	case TimeStateAll, TimeStatePast, TimeStateCurrent, TimeStateFuture:
		return TimeState(s), nil
	default:
		return "", ErrUnknownState
	}
}

// StateFilter is the closed filter expression for booking listings: either a
// TimeState, or an exact BookingStatus, never both. The zero value means ALL.
type StateFilter struct {
	TimeState *TimeState
	Status    *BookingStatus
}

// AllStates is the unconstrained filter
var AllStates = StateFilter{}

// ParseStateFilter resolves a raw state string into a StateFilter.
//
// Resolution is two-tiered and ordered: time state names (ALL/PAST/CURRENT/
// FUTURE) are tried first, then exact status names (WAITING/APPROVED/
// REJECTED/CANCELED). An empty string means ALL. Anything else fails with
// ErrUnknownState naming the offending value.
func ParseStateFilter(raw string) (StateFilter, error) {
	if raw == "" {
		return AllStates, nil
	}

	if ts, err := ParseTimeState(raw); err == nil {
		if ts == TimeStateAll {
			return AllStates, nil
		}
		return StateFilter{TimeState: &ts}, nil
	}

	if status, err := ParseBookingStatus(raw); err == nil {
		return StateFilter{Status: &status}, nil
	}

	return StateFilter{}, fmt.Errorf("%w: %s", ErrUnknownState, raw)
}

// IsAll returns true if the filter is unconstrained
func (f StateFilter) IsAll() bool {
	return f.TimeState == nil && f.Status == nil
}

// String returns the wire representation of the filter
func (f StateFilter) String() string {
	switch {
	case f.TimeState != nil:
		return string(*f.TimeState)
	case f.Status != nil:
		return string(*f.Status)
	default:
		return string(TimeStateAll)
	}
}
