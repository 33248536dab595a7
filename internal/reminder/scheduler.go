package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// Исходы напоминаний для метрик
const (
	ResultScheduled = "scheduled"
	ResultSkipped   = "skipped"
	ResultSent      = "sent"
	ResultDropped   = "dropped"
	ResultFailed    = "failed"
)

const fireTimeout = 10 * time.Second

// timer отменяемый одноразовый таймер (*time.Timer)
type timer interface {
	Stop() bool
}

type armed struct {
	timer  timer
	seq    uint64
	fireAt time.Time
}

// Scheduler одноразовые напоминания о подтверждённых уроках
// Таймеры живут в памяти; после рестарта их восстанавливает Restore
type Scheduler struct {
	reader   ReservationReader
	notifier Notifier
	recorder Recorder
	location *time.Location
	lead     time.Duration
	logger   Logger

	now       func() time.Time
	afterFunc func(d time.Duration, f func()) timer

	mu      sync.Mutex
	timers  map[int64]armed
	seq     uint64
	stopped bool
}

// NewScheduler создает планировщик; recorder может быть nil
func NewScheduler(
	reader ReservationReader,
	notifier Notifier,
	recorder Recorder,
	location *time.Location,
	lead time.Duration,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		reader:   reader,
		notifier: notifier,
		recorder: recorder,
		location: location,
		lead:     lead,
		logger:   logger,
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
		timers: make(map[int64]armed),
	}
}

// FireAt момент напоминания: начало урока в часовом поясе школы минус lead
func (s *Scheduler) FireAt(res *domain.Reservation) (time.Time, error) {
	startsAt, err := res.StartsAt(s.location)
	if err != nil {
		return time.Time{}, err
	}
	return startsAt.Add(-s.lead), nil
}

// HandleConfirmed обработчик события reservation.confirmed
func (s *Scheduler) HandleConfirmed(ctx context.Context, event domain.ReservationEvent) error {
	res, err := s.reader.GetByID(ctx, event.ReservationID)
	if err != nil {
		return fmt.Errorf("reminder: load reservation id=%d: %w", event.ReservationID, err)
	}
	_, err = s.Schedule(res)
	return err
}

// Schedule взводит напоминание; повторный вызов для той же брони заменяет таймер
// Возвращает false, если время напоминания уже прошло или бронь не подтверждена
func (s *Scheduler) Schedule(res *domain.Reservation) (bool, error) {
	if res.Status != domain.StatusConfirmed {
		return false, nil
	}

	fireAt, err := s.FireAt(res)
	if err != nil {
		return false, fmt.Errorf("reminder: fire time for id=%d: %w", res.ID, err)
	}

	now := s.now()
	if !fireAt.After(now) {
		s.logger.Info("Reminder: fire time %s for reservation id=%d has passed, skipping",
			fireAt.Format(time.RFC3339), res.ID)
		s.record(ResultSkipped)
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false, nil
	}

	if prev, ok := s.timers[res.ID]; ok {
		prev.timer.Stop()
	}
	s.seq++
	seq := s.seq
	id := res.ID
	s.timers[id] = armed{
		timer:  s.afterFunc(fireAt.Sub(now), func() { s.fire(id, seq) }),
		seq:    seq,
		fireAt: fireAt,
	}

	s.logger.Info("Reminder: scheduled for reservation id=%d at %s", id, fireAt.Format(time.RFC3339))
	s.record(ResultScheduled)
	return true, nil
}

// Restore взводит напоминания всех подтверждённых броней начиная с сегодняшнего дня
func (s *Scheduler) Restore(ctx context.Context) (int, error) {
	today := domain.DateOnly(s.now().In(s.location))
	list, err := s.reader.List(ctx, domain.ReservationFilter{
		Statuses: []domain.ReservationStatus{domain.StatusConfirmed},
		DateFrom: &today,
	})
	if err != nil {
		return 0, fmt.Errorf("reminder: restore: %w", err)
	}

	restored := 0
	for _, res := range list {
		ok, err := s.Schedule(res)
		if err != nil {
			s.logger.Warn("Reminder: restore failed for reservation id=%d: %v", res.ID, err)
			continue
		}
		if ok {
			restored++
		}
	}
	s.logger.Info("Reminder: restored %d of %d confirmed reservations", restored, len(list))
	return restored, nil
}

// Pending количество взведённых таймеров
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop отменяет все таймеры; после Stop новые напоминания не взводятся
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, a := range s.timers {
		a.timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) fire(id int64, seq uint64) {
	s.mu.Lock()
	current, ok := s.timers[id]
	if !ok || current.seq != seq {
		// Таймер уже заменён или планировщик остановлен
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	res, err := s.reader.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Reminder: failed to load reservation id=%d: %v", id, err)
		s.record(ResultFailed)
		return
	}
	if res.Status != domain.StatusConfirmed {
		s.logger.Info("Reminder: reservation id=%d is %s, not sending", id, res.Status)
		s.record(ResultDropped)
		return
	}

	startsAt, err := res.StartsAt(s.location)
	if err != nil {
		s.logger.Error("Reminder: bad slot for reservation id=%d: %v", id, err)
		s.record(ResultFailed)
		return
	}

	if err := s.notifier.SendReminder(ctx, res, startsAt); err != nil {
		s.logger.Error("Reminder: delivery failed for reservation id=%d: %v", id, err)
		s.record(ResultFailed)
		return
	}

	s.logger.Info("Reminder: sent for reservation id=%d to requester=%d", id, res.RequesterID)
	s.record(ResultSent)
}

func (s *Scheduler) record(result string) {
	if s.recorder != nil {
		s.recorder.IncReminder(result)
	}
}
