package get_requester

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters"
)

const (
	msgInvalidRequesterID = "некорректный ID пользователя"
	msgNotFound           = "пользователь не найден"
)

type Handler struct {
	service RequesterService
	logger  Logger
}

func NewHandler(service RequesterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requesters/{requesterId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, err := handlers.PathInt64(r, "requesterId")
	if err != nil {
		h.logger.Warn("GET /requesters/{id} - Invalid requester ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	result, err := h.service.GetByID(r.Context(), requesterID)
	if err != nil {
		switch {
		case errors.Is(err, requesters.ErrRequesterNotFound):
			h.logger.Warn("GET /requesters/{id} - Requester not found: user_id=%d", requesterID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /requesters/{id} - Failed to get requester: user_id=%d, error=%v", requesterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
