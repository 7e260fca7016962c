package domain

import "time"

// BookingStatus represents the persisted status of a booking
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// ParseBookingStatus parses a status value from its wire representation
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return BookingStatus(s), nil
	default:
		return "", ErrUnknownState
	}
}

// Booking represents a reservation of an item for a date range
//
// ItemOwnerID is the owner of the item at booking time, denormalized so that
// owner-side history queries do not need the item service. Authorization on
// state transitions still reads the owner live from the item service.
type Booking struct {
	ID          int64
	StartDate   time.Time
	EndDate     time.Time
	Status      BookingStatus
	BookerID    int64
	ItemID      int64
	ItemOwnerID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWaiting returns true if the booking has not been decided yet
func (b *Booking) IsWaiting() bool {
	return b.Status == StatusWaiting
}

// IsDecided returns true if the booking was approved or rejected
// Both states are terminal: a booking is decided exactly once
func (b *Booking) IsDecided() bool {
	return b.Status == StatusApproved || b.Status == StatusRejected
}

// IsPast returns true if the booking ended before now
func (b *Booking) IsPast(now time.Time) bool {
	return b.EndDate.Before(now)
}

// IsCurrent returns true if the booking is in progress at now
func (b *Booking) IsCurrent(now time.Time) bool {
	return b.StartDate.Before(now) && b.EndDate.After(now)
}

// IsFuture returns true if the booking starts after now
func (b *Booking) IsFuture(now time.Time) bool {
	return b.StartDate.After(now)
}
