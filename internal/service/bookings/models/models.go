package models

import (
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
)

// Request модели

// BookerBookingsRequest запрос истории бронирований заявителя
// State приходит сырой строкой и разбирается на стороне сервиса
// (временное состояние имеет приоритет над статусом, см. domain.ParseStateFilter)
type BookerBookingsRequest struct {
	UserID int64
	State  *string
	From   *int64
	Size   *int64
}

// OwnerBookingsRequest запрос бронирований вещей владельца
// State уже разобран на границе в типизированный фильтр
type OwnerBookingsRequest struct {
	UserID int64
	State  domain.StateFilter
	From   *int64
	Size   *int64
}

// Response модели

// BookingResponse проекция бронирования
type BookingResponse struct {
	ID          int64     `json:"id"`
	StartDate   time.Time `json:"start"`
	EndDate     time.Time `json:"end"`
	Status      string    `json:"status"`
	BookerID    int64     `json:"bookerId"`
	ItemID      int64     `json:"itemId"`
	ItemOwnerID int64     `json:"itemOwnerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse список проекций бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Status:      string(b.Status),
		BookerID:    b.BookerID,
		ItemID:      b.ItemID,
		ItemOwnerID: b.ItemOwnerID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}
