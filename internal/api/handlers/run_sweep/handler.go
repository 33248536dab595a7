package run_sweep

import (
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase ExpireReservationsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireReservationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sweeps
// Внеочередной прогон истечения неоплаченных броней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RunSweepRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /sweeps - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Error("POST /sweeps - Failed to run expiry sweep: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sweeps - Sweep finished: expired=%d", result.ExpiredCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
