package domain

import "time"

// BookingsFilter is the storage-level predicate set for booking listings.
// Nil fields are not applied. All comparisons are strict, matching the
// temporal state definitions (PAST: end < now, CURRENT: start < now < end,
// FUTURE: start > now).
type BookingsFilter struct {
	Status      *BookingStatus
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
}

// ToBookingsFilter lowers a StateFilter into storage predicates,
// evaluating temporal states against the supplied now
func (f StateFilter) ToBookingsFilter(now time.Time) BookingsFilter {
	if f.Status != nil {
		return BookingsFilter{Status: f.Status}
	}

	if f.TimeState == nil {
		return BookingsFilter{}
	}

	switch *f.TimeState {
	case TimeStatePast:
		return BookingsFilter{EndBefore: &now}
	case TimeStateCurrent:
		return BookingsFilter{StartBefore: &now, EndAfter: &now}
	case TimeStateFuture:
		return BookingsFilter{StartAfter: &now}
	default:
		return BookingsFilter{}
	}
}
