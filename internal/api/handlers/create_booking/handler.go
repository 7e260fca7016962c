package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DDTHH:MM:SS"
	msgInvalidInterval    = "некорректный интервал бронирования"
	msgItemUnavailable    = "вещь недоступна для бронирования"
	msgItemNotFound       = "вещь не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgCannotBook         = "эта вещь не может быть забронирована"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: booker_id=%d, item_id=%d: %v", bookerID, req.ItemID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createBooking.ErrItemUnavailable):
			h.logger.Warn("POST /bookings - Item unavailable: item_id=%d", req.ItemID)
			handlers.RespondBadRequest(w, msgItemUnavailable)

		case errors.Is(err, createBooking.ErrItemNotFound):
			h.logger.Warn("POST /bookings - Item not found: item_id=%d", req.ItemID)
			handlers.RespondNotFound(w, msgItemNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - Booker not found: booker_id=%d", bookerID)
			handlers.RespondNotFound(w, msgUserNotFound)

		// Попытка забронировать свою вещь и конфликт с подтвержденной бронью
		// намеренно отдаются как 404: существование и принадлежность вещи
		// не раскрываются заявителю
		case errors.Is(err, createBooking.ErrOwnItem),
			errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking rejected: booker_id=%d, item_id=%d: %v", bookerID, req.ItemID, err)
			handlers.RespondNotFound(w, msgCannotBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: booker_id=%d, item_id=%d, error=%v",
				bookerID, req.ItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: id=%d, booker_id=%d, item_id=%d",
		result.ID, bookerID, req.ItemID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
