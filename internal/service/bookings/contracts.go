package bookings

import (
	"context"
	"time"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
	"github.com/m04kA/ShareIt-BookingService/pkg/pagination"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, filter domain.BookingsFilter, page *pagination.PageRequest) ([]*domain.Booking, error)
	ListByItemAndOwner(ctx context.Context, itemID, ownerID int64) ([]*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
