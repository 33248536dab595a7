package events

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// EventCounter счётчик событий по типу
type EventCounter interface {
	IncReservationEvent(eventType string)
}

// CountEvents подписчик, считающий каждое опубликованное событие
func CountEvents(counter EventCounter) Handler {
	return func(_ context.Context, event domain.ReservationEvent) error {
		counter.IncReservationEvent(string(event.Type))
		return nil
	}
}
