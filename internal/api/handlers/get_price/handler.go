package get_price

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices"
)

const msgInvalidPair = "неизвестный формат занятия или направление"

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

// Handle GET /api/v1/prices/{tier}/{category}
// Без записи в таблице возвращается цена по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tier, category := vars["tier"], vars["category"]

	price, err := h.service.GetPrice(r.Context(), tier, category)
	if err != nil {
		switch {
		case errors.Is(err, prices.ErrInvalidInput):
			h.logger.Warn("GET /prices/{tier}/{category} - Invalid pair: tier=%s, category=%s", tier, category)
			handlers.RespondBadRequest(w, msgInvalidPair)

		default:
			h.logger.Error("GET /prices/{tier}/{category} - Failed to get price: tier=%s, category=%s, error=%v",
				tier, category, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /prices/{tier}/{category} - Price retrieved: tier=%s, category=%s, amount=%.2f, default=%t",
		tier, category, price.Amount, price.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, price)
}
