package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
)

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:          11,
		RequesterID: 42,
		Tier:        domain.TierDuet,
		Category:    domain.CategoryVocal,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Slot:        "10:00",
		Status:      domain.StatusConfirmed,
		Price:       1200,
	}
}

func TestNewReservationEvent(t *testing.T) {
	at := time.Date(2024, 5, 30, 15, 0, 0, 0, time.FixedZone("MSK", 3*3600))

	event := NewReservationEvent(domain.EventReservationConfirmed, sampleReservation(), at)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, domain.EventReservationConfirmed, event.Type)
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, at.Equal(event.OccurredAt))
	assert.Equal(t, int64(11), event.ReservationID)
	assert.Equal(t, int64(42), event.RequesterID)
	assert.Equal(t, "2024-06-01", event.Date)
	assert.Equal(t, 1200.0, event.Price)
}

func TestBus_DispatchesByTypeAndToCatchAll(t *testing.T) {
	bus := NewBus(logger.Nop())

	var got []string
	bus.Subscribe(domain.EventReservationConfirmed, func(_ context.Context, e domain.ReservationEvent) error {
		got = append(got, "confirmed:"+string(e.Type))
		return nil
	})
	bus.Subscribe(domain.EventReservationCancelled, func(_ context.Context, e domain.ReservationEvent) error {
		got = append(got, "cancelled:"+string(e.Type))
		return nil
	})
	bus.SubscribeAll(func(_ context.Context, e domain.ReservationEvent) error {
		got = append(got, "all:"+string(e.Type))
		return nil
	})

	at := time.Now()
	bus.Publish(context.Background(), NewReservationEvent(domain.EventReservationConfirmed, sampleReservation(), at))
	bus.Publish(context.Background(), NewReservationEvent(domain.EventReservationExpired, sampleReservation(), at))

	assert.Equal(t, []string{
		"confirmed:reservation.confirmed",
		"all:reservation.confirmed",
		"all:reservation.expired",
	}, got)
}

func TestBus_HandlerFailureDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(logger.Nop())

	calls := 0
	bus.SubscribeAll(func(context.Context, domain.ReservationEvent) error {
		calls++
		return errors.New("broker down")
	})
	bus.SubscribeAll(func(context.Context, domain.ReservationEvent) error {
		calls++
		panic("boom")
	})
	bus.SubscribeAll(func(context.Context, domain.ReservationEvent) error {
		calls++
		return nil
	})

	require.NotPanics(t, func() {
		bus.Publish(context.Background(), NewReservationEvent(domain.EventReservationCreated, sampleReservation(), time.Now()))
	})
	assert.Equal(t, 3, calls)
}
