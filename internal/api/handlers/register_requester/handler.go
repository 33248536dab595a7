package register_requester

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
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

// Handle POST /api/v1/requesters
// 201 при первой регистрации, 200 если пользователь уже известен
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requesters - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, requesters.ErrInvalidInput):
			h.logger.Warn("POST /requesters - Invalid user ID: %d", req.UserID)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("POST /requesters - Failed to register requester: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /requesters - Requester registered: user_id=%d, created=%t", result.UserID, result.Created)
	handlers.RespondJSON(w, status, result)
}
