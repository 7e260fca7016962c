package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	userClient "github.com/m04kA/ShareIt-BookingService/internal/integrations/userservice"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
	"github.com/m04kA/ShareIt-BookingService/pkg/pagination"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	userClient   UserServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		userClient:   userClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов с фиксированным "сейчас")
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Видимость: только заявитель или владелец вещи; остальным - ErrAccessDenied,
// который граница транслирует в not found
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

// ListForBooker получает историю бронирований заявителя
// Сырая строка состояния разбирается здесь: сначала временные состояния
// (ALL/PAST/CURRENT/FUTURE), затем точные статусы; отсутствие значения
// трактуется как ALL
func (s *Service) ListForBooker(ctx context.Context, req *models.BookerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForBooker: fetching bookings for user=%d, state=%v", req.UserID, req.State)

	if err := s.checkUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	rawState := ""
	if req.State != nil {
		rawState = *req.State
	}

	filter, err := domain.ParseStateFilter(rawState)
	if err != nil {
		s.logger.Warn("ListForBooker: invalid state=%s for user=%d", rawState, req.UserID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	page, err := pagination.MakePageRequest(req.From, req.Size)
	if err != nil {
		s.logger.Warn("ListForBooker: invalid page params for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	bookings, err := s.bookingRepo.ListByBooker(ctx, req.UserID, filter.ToBookingsFilter(now), page)
	if err != nil {
		s.logger.Error("ListForBooker: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForBooker - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForBooker: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForOwner получает бронирования вещей владельца
// Фильтр состояния уже типизирован вызывающей стороной
func (s *Service) ListForOwner(ctx context.Context, req *models.OwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForOwner: fetching bookings for owner=%d, state=%s", req.UserID, req.State)

	if err := s.checkUserExists(ctx, req.UserID); err != nil {
		return nil, err
	}

	page, err := pagination.MakePageRequest(req.From, req.Size)
	if err != nil {
		s.logger.Warn("ListForOwner: invalid page params for owner=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.timeProvider.Now()
	bookings, err := s.bookingRepo.ListByOwner(ctx, req.UserID, req.State.ToBookingsFilter(now), page)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForOwner: successfully fetched %d bookings for owner=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListForItem получает бронирования вещи, видимые её владельцу
// Сортировка по дате начала по возрастанию; для чужой вещи список пуст
func (s *Service) ListForItem(ctx context.Context, itemID, ownerID int64) (*models.BookingListResponse, error) {
	s.logger.Info("ListForItem: fetching bookings for item=%d, owner=%d", itemID, ownerID)

	bookings, err := s.bookingRepo.ListByItemAndOwner(ctx, itemID, ownerID)
	if err != nil {
		s.logger.Error("ListForItem: repository error for item=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: ListForItem - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForItem: successfully fetched %d bookings for item=%d", len(bookings), itemID)
	return models.FromDomainBookingList(bookings), nil
}

// checkUserExists проверяет, что субъект запроса существует в UserService
func (s *Service) checkUserExists(ctx context.Context, userID int64) error {
	if _, err := s.userClient.GetUser(ctx, userID); err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("checkUserExists: user id=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkUserExists: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkUserExists - failed to get user: %v", ErrInternal, err)
	}
	return nil
}
