package decide_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	itemClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/itemservice"
)

// UseCase use case решения по заявке на бронирование
//
// Одношаговый конечный автомат: WAITING -> APPROVED или WAITING -> REJECTED,
// оба состояния терминальны. Повторное решение невозможно.
type UseCase struct {
	bookingRepo BookingRepository
	itemClient  ItemServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	itemClient ItemServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		itemClient:  itemClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет решение по заявке
//
// Порядок проверок фиксирован:
//  1. заявка существует;
//  2. решающий не является заявителем;
//  3. решающий является владельцем вещи И заявка в статусе WAITING
//     (нарушение любого из двух дает одну и ту же ошибку);
//  4. при подтверждении - повторная проверка конфликта внутри транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideBooking: booking=%d, user=%d, approved=%v", req.BookingID, req.UserID, req.Approved)

	// 1. Заявка должна существовать
	booking, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// 2. Заявитель не может решать свою заявку
	if booking.BookerID == req.UserID {
		uc.logger.Warn("DecideBooking: booker=%d attempts to decide own booking id=%d", req.UserID, req.BookingID)
		return nil, ErrSelfDecision
	}

	// 3. Владелец читается живьём из ItemService на момент решения
	item, err := uc.itemClient.GetItem(ctx, booking.ItemID, req.UserID)
	if err != nil {
		if errors.Is(err, itemClient.ErrItemNotFound) {
			uc.logger.Warn("DecideBooking: item id=%d not found for booking id=%d", booking.ItemID, req.BookingID)
			return nil, ErrItemNotFound
		}
		uc.logger.Error("DecideBooking: failed to get item id=%d: %v", booking.ItemID, err)
		return nil, fmt.Errorf("%w: failed to get item: %v", ErrInternal, err)
	}

	if item.OwnerID != req.UserID || !booking.IsWaiting() {
		uc.logger.Warn("DecideBooking: status not updatable for booking id=%d (user=%d, status=%s)",
			req.BookingID, req.UserID, booking.Status)
		return nil, ErrStatusNotUpdatable
	}

	newStatus := domain.StatusRejected
	if req.Approved {
		newStatus = domain.StatusApproved
	}

	// 4. Смена статуса в сериализуемой транзакции с повторными проверками:
	// между чтением выше и фиксацией заявка могла быть решена конкурентно,
	// а при подтверждении мог появиться пересекающийся APPROVED
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if !current.IsWaiting() {
			uc.logger.Warn("DecideBooking: booking id=%d already decided (status=%s)", req.BookingID, current.Status)
			return ErrStatusNotUpdatable
		}

		if req.Approved {
			conflicts, err := uc.bookingRepo.GetApprovedByItemEndingAfter(txCtx, current.ItemID, current.StartDate)
			if err != nil {
				uc.logger.Error("DecideBooking: conflict re-check failed for item id=%d: %v", current.ItemID, err)
				return fmt.Errorf("%w: conflict re-check failed: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("DecideBooking: approval of booking id=%d conflicts with %d approved bookings",
					req.BookingID, len(conflicts))
				return ErrApprovalConflict
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, newStatus); err != nil {
			uc.logger.Error("DecideBooking: failed to update status for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		current.Status = newStatus
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DecideBooking: booking id=%d decided, status=%s", req.BookingID, newStatus)

	return &Response{
		ID:          result.ID,
		StartDate:   result.StartDate,
		EndDate:     result.EndDate,
		Status:      string(result.Status),
		BookerID:    result.BookerID,
		ItemID:      result.ItemID,
		ItemOwnerID: result.ItemOwnerID,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("DecideBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("DecideBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}
