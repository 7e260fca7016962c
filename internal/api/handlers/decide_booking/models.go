package decide_booking

import (
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	decideBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/decide_booking"
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

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *decideBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		Start:       resp.StartDate.Format(domain.DateTimeFormat),
		End:         resp.EndDate.Format(domain.DateTimeFormat),
		Status:      resp.Status,
		BookerID:    resp.BookerID,
		ItemID:      resp.ItemID,
		ItemOwnerID: resp.ItemOwnerID,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
