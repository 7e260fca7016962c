package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	itemClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
	userClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	userClient   UserServiceClient
	itemClient   ItemServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	itemClient ItemServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userClient:   userClient,
		itemClient:   itemClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов с фиксированным "сейчас")
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
//
// Проверка конфликта и вставка выполняются в сериализуемой транзакции:
// две конкурирующие заявки на одну вещь не могут обе пройти check-then-insert.
//
// Предикат конфликта: подтвержденное бронирование той же вещи с концом
// строго после начала запрошенного интервала. Конец запрошенного интервала
// в предикате не участвует (поведение исходной системы, см. DESIGN.md).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: booker=%d, item=%d, start=%v, end=%v",
		req.BookerID, req.ItemID, req.Start, req.End)

	// 1. Получаем вещь
	item, err := uc.itemClient.GetItem(ctx, req.ItemID, req.BookerID)
	if err != nil {
		if errors.Is(err, itemClient.ErrItemNotFound) {
			uc.logger.Warn("CreateBooking: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("CreateBooking: failed to get item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	// 2. Владелец не может бронировать свою вещь, независимо от дат
	if item.OwnerID == req.BookerID {
		uc.logger.Warn("CreateBooking: user=%d attempts to book own item id=%d", req.BookerID, req.ItemID)
		return nil, ErrOwnItem
	}

	// 3. Вещь должна быть доступна для бронирования
	if !item.Available {
		uc.logger.Warn("CreateBooking: item id=%d is not available", req.ItemID)
		return nil, ErrItemUnavailable
	}

	// 4. Валидация интервала
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 5. Заявитель должен существовать
	if _, err := uc.userClient.GetUser(ctx, req.BookerID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: booker id=%d not found", req.BookerID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get booker id=%d: %v", req.BookerID, err)
		return nil, fmt.Errorf("%w: failed to get booker: %v", ErrInternal, err)
	}

	// 6. Проверка конфликта и вставка в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflicts, err := uc.bookingRepo.GetApprovedByItemEndingAfter(txCtx, req.ItemID, *req.Start)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed for item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: item id=%d has %d conflicting approved bookings", req.ItemID, len(conflicts))
			return fmt.Errorf("%w: %s", ErrBookingConflict, item.Name)
		}

		booking := &domain.Booking{
			StartDate:   *req.Start,
			EndDate:     *req.End,
			Status:      domain.StatusWaiting,
			BookerID:    req.BookerID,
			ItemID:      item.ID,
			ItemOwnerID: item.OwnerID,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking for item id=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (item=%d, booker=%d)",
		result.ID, result.ItemID, result.BookerID)

	return toResponse(result), nil
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
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
