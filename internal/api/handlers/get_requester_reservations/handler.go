package get_requester_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
)

const msgInvalidRequesterID = "некорректный ID пользователя"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requesters/{requesterId}/reservations
// Только активные брони (pending_payment, confirmed), по дате и слоту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, err := handlers.PathInt64(r, "requesterId")
	if err != nil || requesterID <= 0 {
		h.logger.Warn("GET /requesters/{id}/reservations - Invalid requester ID: %q", r.URL.Path)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	result, err := h.service.ListActiveByRequester(r.Context(), requesterID)
	if err != nil {
		h.logger.Error("GET /requesters/{id}/reservations - Failed to list reservations: requester_id=%d, error=%v",
			requesterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /requesters/{id}/reservations - Reservations retrieved: requester_id=%d, count=%d",
		requesterID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
