package broker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// ReminderMessage сообщение для чат-бота, который доставит напоминание
type ReminderMessage struct {
	ID            string    `json:"id"`
	ReservationID int64     `json:"reservationId"`
	RequesterID   int64     `json:"requesterId"`
	Tier          string    `json:"tier"`
	Category      string    `json:"category"`
	Instrument    *string   `json:"instrument,omitempty"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	StartsAt      time.Time `json:"startsAt"`
}

// Notifier публикует напоминания в RabbitMQ
type Notifier struct {
	publisher  MessagePublisher
	routingKey string
}

func NewNotifier(publisher MessagePublisher, routingKey string) *Notifier {
	return &Notifier{publisher: publisher, routingKey: routingKey}
}

func (n *Notifier) SendReminder(ctx context.Context, res *domain.Reservation, startsAt time.Time) error {
	msg := ReminderMessage{
		ID:            uuid.NewString(),
		ReservationID: res.ID,
		RequesterID:   res.RequesterID,
		Tier:          string(res.Tier),
		Category:      string(res.Category),
		Date:          res.Date.Format(domain.DateFormat),
		Slot:          res.Slot.String(),
		StartsAt:      startsAt,
	}
	if res.Instrument != nil {
		instrument := string(*res.Instrument)
		msg.Instrument = &instrument
	}
	return n.publisher.Publish(ctx, n.routingKey, msg.ID, msg)
}
