package domain

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// EventType тип события жизненного цикла брони
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationExpired   EventType = "reservation.expired"
)

// ReservationEvent событие, публикуемое после успешного перехода статуса
type ReservationEvent struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	OccurredAt    time.Time         `json:"occurredAt"`
	ReservationID int64             `json:"reservationId"`
	RequesterID   int64             `json:"requesterId"`
	Date          string            `json:"date"`
	Slot          types.TimeString  `json:"slot"`
	Status        ReservationStatus `json:"status"`
	Price         float64           `json:"price"`
}
