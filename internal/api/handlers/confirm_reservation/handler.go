package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MusicBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgCannotConfirm        = "бронь отменена или истекла и не может быть подтверждена"
)

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

// Handle POST /api/v1/reservations/{reservationId}/confirm
// Повторное подтверждение отвечает 200 с changed=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathInt64(r, "reservationId")
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/confirm - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Confirm(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/confirm - Reservation not found: id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidTransition):
			h.logger.Warn("POST /reservations/{id}/confirm - Invalid transition: id=%d, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("POST /reservations/{id}/confirm - Failed to confirm reservation: id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/confirm - Reservation confirmed: id=%d, changed=%t",
		reservationID, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, result)
}
