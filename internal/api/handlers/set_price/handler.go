package set_price

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAmount      = "цена обязательна"
	msgInvalidPair        = "неизвестный формат занятия или направление"
	msgInvalidAmount      = "цена не может быть отрицательной"
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

// Handle PUT /api/v1/prices/{tier}/{category}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tier, category := vars["tier"], vars["category"]

	var req SetPriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /prices/{tier}/{category} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Amount == nil {
		h.logger.Warn("PUT /prices/{tier}/{category} - Missing amount: tier=%s, category=%s", tier, category)
		handlers.RespondBadRequest(w, msgMissingAmount)
		return
	}

	price, err := h.service.SetPrice(r.Context(), req.ToServiceRequest(tier, category))
	if err != nil {
		switch {
		case errors.Is(err, prices.ErrInvalidAmount):
			h.logger.Warn("PUT /prices/{tier}/{category} - Invalid amount: tier=%s, category=%s, amount=%.2f",
				tier, category, *req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, prices.ErrInvalidInput):
			h.logger.Warn("PUT /prices/{tier}/{category} - Invalid pair: tier=%s, category=%s", tier, category)
			handlers.RespondBadRequest(w, msgInvalidPair)

		default:
			h.logger.Error("PUT /prices/{tier}/{category} - Failed to set price: tier=%s, category=%s, error=%v",
				tier, category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /prices/{tier}/{category} - Price updated: tier=%s, category=%s, amount=%.2f",
		tier, category, price.Amount)
	handlers.RespondJSON(w, http.StatusOK, price)
}
