package broker

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// EventForwarder пересылает события брони в exchange; routing key = тип события
type EventForwarder struct {
	publisher MessagePublisher
}

func NewEventForwarder(publisher MessagePublisher) *EventForwarder {
	return &EventForwarder{publisher: publisher}
}

// HandleEvent подписчик шины событий
func (f *EventForwarder) HandleEvent(ctx context.Context, event domain.ReservationEvent) error {
	return f.publisher.Publish(ctx, string(event.Type), event.ID, event)
}
