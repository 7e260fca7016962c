package get_item_bookings

import (
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
	BookerID    int64  `json:"bookerId"`
	ItemID      int64  `json:"itemId"`
	ItemOwnerID int64  `json:"itemOwnerId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// BookingListResponse список бронирований вещи
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromServiceResponse конвертирует DTO сервиса в HTTP response
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(resp.Bookings)),
	}
	for _, b := range resp.Bookings {
		result.Bookings = append(result.Bookings, BookingResponse{
			ID:          b.ID,
			Start:       b.StartDate.Format(domain.DateTimeFormat),
			End:         b.EndDate.Format(domain.DateTimeFormat),
			Status:      b.Status,
			BookerID:    b.BookerID,
			ItemID:      b.ItemID,
			ItemOwnerID: b.ItemOwnerID,
			CreatedAt:   b.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
		})
	}
	return result
}
