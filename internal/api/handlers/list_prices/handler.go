package list_prices

import (
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
)

type Handler struct {
	service PriceService
	logger  Logger
}

func NewHandler(service PriceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/prices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPrices(r.Context())
	if err != nil {
		h.logger.Error("GET /prices - Failed to list prices: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /prices - Prices retrieved: count=%d", len(result.Prices))
	handlers.RespondJSON(w, http.StatusOK, result)
}
