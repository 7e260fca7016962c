package get_booker_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings"
	"github.com/m04kA/ShareIt-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidQueryParams = "некорректные параметры запроса"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?state=&from=&size=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	req := &models.BookerBookingsRequest{UserID: userID}

	query := r.URL.Query()
	if raw := query.Get("state"); raw != "" {
		req.State = &raw
	}

	from, size, err := parsePageParams(query.Get("from"), query.Get("size"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid page params for user=%d: %v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidQueryParams)
		return
	}
	req.From = from
	req.Size = size

	result, err := h.service.ListForBooker(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUserNotFound):
			h.logger.Warn("GET /bookings - User not found: user=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid params for user=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidQueryParams)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: user=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Fetched %d bookings for user=%d", len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}

// parsePageParams разбирает опциональные from/size из query
func parsePageParams(fromRaw, sizeRaw string) (*int64, *int64, error) {
	var from, size *int64

	if fromRaw != "" {
		v, err := strconv.ParseInt(fromRaw, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		from = &v
	}

	if sizeRaw != "" {
		v, err := strconv.ParseInt(sizeRaw, 10, 64)
		if err != nil {
			return nil, nil, err
		}
		size = &v
	}

	return from, size, nil
}
