package create_booking

import (
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	createBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ItemID int64   `json:"itemId"`
	Start  *string `json:"start"` // "2025-10-15T10:00:00"
	End    *string `json:"end"`   // "2025-10-17T10:00:00"
}

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

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Отсутствующие даты передаются дальше как nil - валидация интервала
// принадлежит use case, а не границе
func (r *CreateBookingRequest) ToUseCaseRequest(bookerID int64) (*createBooking.Request, error) {
	var start, end *time.Time

	if r.Start != nil {
		parsed, err := time.Parse(domain.DateTimeFormat, *r.Start)
		if err != nil {
			return nil, err
		}
		start = &parsed
	}

	if r.End != nil {
		parsed, err := time.Parse(domain.DateTimeFormat, *r.End)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	return &createBooking.Request{
		BookerID: bookerID,
		ItemID:   r.ItemID,
		Start:    start,
		End:      end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
