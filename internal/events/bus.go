package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// Handler обработчик события брони
type Handler func(ctx context.Context, event domain.ReservationEvent) error

// Bus синхронная шина событий внутри процесса
// Ошибка подписчика логируется и не доходит до публикующего
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventType][]Handler
	all      []Handler
	logger   Logger
}

func NewBus(logger Logger) *Bus {
	return &Bus{
		handlers: make(map[domain.EventType][]Handler),
		logger:   logger,
	}
}

// Subscribe подписывает обработчик на один тип события
func (b *Bus) Subscribe(eventType domain.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// SubscribeAll подписывает обработчик на все типы
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish доставляет событие подписчикам в порядке подписки
func (b *Bus) Publish(ctx context.Context, event domain.ReservationEvent) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type])+len(b.all))
	handlers = append(handlers, b.handlers[event.Type]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := b.safeCall(ctx, h, event); err != nil {
			b.logger.Error("Publish: handler failed for event=%s reservation=%d: %v",
				event.Type, event.ReservationID, err)
		}
	}
}

func (b *Bus) safeCall(ctx context.Context, h Handler, event domain.ReservationEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panic: %v", p)
		}
	}()
	return h(ctx, event)
}

// NewReservationEvent собирает событие по текущему состоянию брони
func NewReservationEvent(eventType domain.EventType, res *domain.Reservation, at time.Time) domain.ReservationEvent {
	return domain.ReservationEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		OccurredAt:    at.UTC(),
		ReservationID: res.ID,
		RequesterID:   res.RequesterID,
		Date:          res.Date.Format(domain.DateFormat),
		Slot:          res.Slot,
		Status:        res.Status,
		Price:         res.Price,
	}
}
