package decide_booking

import (
	"context"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetApprovedByItemEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// ItemServiceClient интерфейс клиента для ItemService
// Владелец вещи читается живьём на момент решения, а не из денормализованной
// колонки: владение могло смениться после создания заявки
type ItemServiceClient interface {
	GetItem(ctx context.Context, itemID, requesterID int64) (*itemservice.Item, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
