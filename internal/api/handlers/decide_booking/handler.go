package decide_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	decideBooking "github.com/m04kA/ShareIt-BookingService/internal/usecase/decide_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidApproved    = "параметр approved обязателен и должен быть true или false"
	msgBookingNotFound    = "бронирование не найдено"
	msgStatusNotUpdatable = "статус бронирования нельзя изменить"
	msgApprovalConflict   = "интервал уже занят подтвержденным бронированием"
)

type Handler struct {
	useCase DecideBookingUseCase
	logger  Logger
}

func NewHandler(useCase DecideBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{bookingId} - Invalid booking ID: %s", vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		h.logger.Warn("PATCH /bookings/%d - Invalid approved param: %s", bookingID, r.URL.Query().Get("approved"))
		handlers.RespondBadRequest(w, msgInvalidApproved)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &decideBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Approved:  approved,
	})
	if err != nil {
		switch {
		// Решение по своей же заявке и пропавшая вещь отдаются как not found,
		// чтобы не раскрывать чужие бронирования
		case errors.Is(err, decideBooking.ErrBookingNotFound),
			errors.Is(err, decideBooking.ErrSelfDecision),
			errors.Is(err, decideBooking.ErrItemNotFound):
			h.logger.Warn("PATCH /bookings/%d - Booking not available for user=%d: %v", bookingID, userID, err)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, decideBooking.ErrStatusNotUpdatable):
			h.logger.Warn("PATCH /bookings/%d - Status not updatable by user=%d", bookingID, userID)
			handlers.RespondBadRequest(w, msgStatusNotUpdatable)

		case errors.Is(err, decideBooking.ErrApprovalConflict):
			h.logger.Warn("PATCH /bookings/%d - Approval conflict: %v", bookingID, err)
			handlers.RespondError(w, http.StatusConflict, msgApprovalConflict)

		default:
			h.logger.Error("PATCH /bookings/%d - Failed to decide booking: user=%d, error=%v", bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%d - Booking decided: user=%d, approved=%t, status=%s",
		bookingID, userID, approved, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
