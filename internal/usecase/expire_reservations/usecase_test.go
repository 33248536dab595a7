package expire_reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MusicBookingService/internal/testutil"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ReservationEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.ReservationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type sweepRecorder struct {
	runs    int
	expired int
	errs    int
}

func (r *sweepRecorder) ObserveSweep(expired int, err error) {
	r.runs++
	r.expired += expired
	if err != nil {
		r.errs++
	}
}

type failingRepo struct{}

func (failingRepo) ExpireStale(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
	return nil, errors.New("db down")
}

var createdAt = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)

func seedPending(t *testing.T, repo *reservationRepo.Repository) *domain.Reservation {
	t.Helper()
	res, err := repo.Create(context.Background(), &domain.Reservation{
		RequesterID: 42,
		Tier:        domain.TierSolo,
		Category:    domain.CategoryStrings,
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Slot:        "10:00",
		Status:      domain.StatusPendingPayment,
		Price:       800,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	require.NoError(t, err)
	return res
}

func TestUseCase_Execute_Timeout(t *testing.T) {
	ctx := context.Background()

	t.Run("ten minutes later stays pending", func(t *testing.T) {
		repo := reservationRepo.NewRepository(dbmetrics.Wrap(testutil.NewSQLiteDB(t), nil))
		res := seedPending(t, repo)
		publisher := &recordingPublisher{}
		uc := NewUseCase(repo, publisher, nil, 15*time.Minute, logger.Nop())

		resp, err := uc.Execute(ctx, &Request{Now: createdAt.Add(10 * time.Minute)})
		require.NoError(t, err)
		assert.Zero(t, resp.ExpiredCount)
		assert.Empty(t, publisher.events)

		got, err := repo.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendingPayment, got.Status)
	})

	t.Run("sixteen minutes later expires", func(t *testing.T) {
		repo := reservationRepo.NewRepository(dbmetrics.Wrap(testutil.NewSQLiteDB(t), nil))
		res := seedPending(t, repo)
		publisher := &recordingPublisher{}
		recorder := &sweepRecorder{}
		uc := NewUseCase(repo, publisher, recorder, 15*time.Minute, logger.Nop())

		sweptAt := createdAt.Add(16 * time.Minute)
		resp, err := uc.Execute(ctx, &Request{Now: sweptAt})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.ExpiredCount)
		assert.Equal(t, []int64{res.ID}, resp.ReservationIDs)
		assert.True(t, createdAt.Add(time.Minute).Equal(resp.Cutoff))

		require.Len(t, publisher.events, 1)
		assert.Equal(t, domain.EventReservationExpired, publisher.events[0].Type)
		assert.Equal(t, domain.StatusExpired, publisher.events[0].Status)
		assert.Equal(t, 1, recorder.expired)

		got, err := repo.GetByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusExpired, got.Status)
		require.NotNil(t, got.ExpiredAt)
		assert.True(t, sweptAt.Equal(*got.ExpiredAt))
	})
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	recorder := &sweepRecorder{}
	uc := NewUseCase(failingRepo{}, &recordingPublisher{}, recorder, 15*time.Minute, logger.Nop())

	_, err := uc.Execute(context.Background(), &Request{Now: createdAt})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, recorder.errs)
}
