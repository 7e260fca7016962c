package get_item_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ShareIt-BookingService/internal/api/handlers"
	"github.com/m04kA/ShareIt-BookingService/internal/api/middleware"
)

const msgInvalidItemID = "некорректный ID вещи"

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

// Handle GET /api/v1/bookings/item/{itemId}
// Список бронирований вещи виден только её владельцу: для чужой вещи
// выборка по паре (item_id, item_owner_id) пуста и отдается как есть
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется аутентификация")
		return
	}

	vars := mux.Vars(r)
	itemID, err := strconv.ParseInt(vars["itemId"], 10, 64)
	if err != nil || itemID <= 0 {
		h.logger.Warn("GET /bookings/item/{itemId} - Invalid item ID: %s", vars["itemId"])
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	result, err := h.service.ListForItem(r.Context(), itemID, userID)
	if err != nil {
		h.logger.Error("GET /bookings/item/%d - Failed to list bookings: user=%d, error=%v", itemID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/item/%d - Fetched %d bookings for owner=%d", itemID, len(result.Bookings), userID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
