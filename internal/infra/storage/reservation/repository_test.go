package reservation

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/testutil"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/ptr"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

var (
	baseTime = time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)
	lessonOn = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbmetrics.Wrap(testutil.NewSQLiteDB(t), nil))
}

func newReservation(slot types.TimeString, status domain.ReservationStatus, createdAt time.Time) *domain.Reservation {
	return &domain.Reservation{
		RequesterID: 42,
		Tier:        domain.TierDuet,
		Category:    domain.CategoryVocal,
		Date:        lessonOn,
		Slot:        slot,
		Status:      status,
		Price:       1200,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	res := newReservation("10:00", domain.StatusPendingPayment, baseTime)
	res.Category = domain.CategoryPercussion
	res.Instrument = ptr.Ptr(domain.InstrumentTimpani)

	created, err := repo.Create(ctx, res)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TierDuet, got.Tier)
	assert.Equal(t, domain.CategoryPercussion, got.Category)
	require.NotNil(t, got.Instrument)
	assert.Equal(t, domain.InstrumentTimpani, *got.Instrument)
	assert.True(t, lessonOn.Equal(got.Date))
	assert.Equal(t, types.TimeString("10:00"), got.Slot)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)
	assert.Equal(t, 1200.0, got.Price)
	assert.True(t, baseTime.Equal(got.CreatedAt))
	assert.Nil(t, got.ConfirmedAt)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_Create_SlotTaken(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newReservation("10:00", domain.StatusConfirmed, baseTime))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Другой слот той же даты свободен
	_, err = repo.Create(ctx, newReservation("10:30", domain.StatusPendingPayment, baseTime))
	assert.NoError(t, err)
}

func TestRepository_Create_InactiveDoesNotBlock(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, newReservation("11:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)

	_, err = repo.TransitionStatus(ctx, first.ID, domain.CancellableStatuses, domain.StatusCancelled, baseTime)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newReservation("11:00", domain.StatusPendingPayment, baseTime))
	assert.NoError(t, err)
}

func TestRepository_Create_ConcurrentSameSlot(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newReservation("15:30", domain.StatusPendingPayment, baseTime))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case assert.ErrorIs(t, err, ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, taken)
}

func TestRepository_OccupiedSlots(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newReservation("12:30", domain.StatusConfirmed, baseTime))
	require.NoError(t, err)
	cancelled, err := repo.Create(ctx, newReservation("14:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)
	_, err = repo.TransitionStatus(ctx, cancelled.ID, domain.CancellableStatuses, domain.StatusCancelled, baseTime)
	require.NoError(t, err)

	other := newReservation("16:00", domain.StatusConfirmed, baseTime)
	other.Date = lessonOn.AddDate(0, 0, 1)
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	slots, err := repo.OccupiedSlots(ctx, lessonOn)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.TimeString{"10:00", "12:30"}, slots)
}

func TestRepository_TransitionStatus(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	confirmAt := baseTime.Add(5 * time.Minute)

	created, err := repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)

	t.Run("pending to confirmed", func(t *testing.T) {
		res, err := repo.TransitionStatus(ctx, created.ID,
			[]domain.ReservationStatus{domain.StatusPendingPayment}, domain.StatusConfirmed, confirmAt)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, res.Status)
		require.NotNil(t, res.ConfirmedAt)
		assert.True(t, confirmAt.Equal(*res.ConfirmedAt))
	})

	t.Run("second confirm is a conflict with current state", func(t *testing.T) {
		res, err := repo.TransitionStatus(ctx, created.ID,
			[]domain.ReservationStatus{domain.StatusPendingPayment}, domain.StatusConfirmed, confirmAt)
		assert.ErrorIs(t, err, ErrStatusConflict)
		require.NotNil(t, res)
		assert.Equal(t, domain.StatusConfirmed, res.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.TransitionStatus(ctx, 12345,
			[]domain.ReservationStatus{domain.StatusPendingPayment}, domain.StatusConfirmed, confirmAt)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

type operationRecorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *operationRecorder) ObserveDBQuery(operation string, _ error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, operation)
}

func (r *operationRecorder) SetDBStats(sql.DBStats) {}

func (r *operationRecorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := r.ops
	r.ops = nil
	return ops
}

func TestRepository_TransitionStatusReturnsUpdatedRow(t *testing.T) {
	recorder := &operationRecorder{}
	repo := NewRepository(dbmetrics.Wrap(testutil.NewSQLiteDB(t), recorder))
	ctx := context.Background()
	cancelAt := baseTime.Add(3 * time.Minute)

	created, err := repo.Create(ctx, newReservation("12:00", domain.StatusConfirmed, baseTime))
	require.NoError(t, err)
	recorder.take()

	res, err := repo.TransitionStatus(ctx, created.ID, domain.CancellableStatuses, domain.StatusCancelled, cancelAt)
	require.NoError(t, err)
	assert.Equal(t, []string{"update"}, recorder.take())

	assert.Equal(t, created.ID, res.ID)
	assert.Equal(t, domain.StatusCancelled, res.Status)
	assert.Equal(t, types.TimeString("12:00"), res.Slot)
	assert.True(t, lessonOn.Equal(res.Date))
	require.NotNil(t, res.CancelledAt)
	assert.True(t, cancelAt.Equal(*res.CancelledAt))
	assert.True(t, cancelAt.Equal(res.UpdatedAt))

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Status, res.Status)
	assert.True(t, stored.CancelledAt.Equal(*res.CancelledAt))
	recorder.take()

	t.Run("conflict reads current state", func(t *testing.T) {
		current, err := repo.TransitionStatus(ctx, created.ID, domain.CancellableStatuses, domain.StatusCancelled, cancelAt)
		assert.ErrorIs(t, err, ErrStatusConflict)
		require.NotNil(t, current)
		assert.Equal(t, domain.StatusCancelled, current.Status)
		assert.Equal(t, []string{"update", "select"}, recorder.take())
	})
}

func TestRepository_ExpireStale(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	timeout := 15 * time.Minute

	stale, err := repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, newReservation("10:30", domain.StatusPendingPayment, baseTime.Add(10*time.Minute)))
	require.NoError(t, err)
	confirmed, err := repo.Create(ctx, newReservation("11:00", domain.StatusConfirmed, baseTime))
	require.NoError(t, err)

	now := baseTime.Add(16 * time.Minute)
	expired, err := repo.ExpireStale(ctx, now.Add(-timeout), now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
	assert.Equal(t, domain.StatusExpired, expired[0].Status)
	require.NotNil(t, expired[0].ExpiredAt)

	got, err := repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)

	got, err = repo.GetByID(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)

	// Повторный прогон без подходящих строк
	expired, err = repo.ExpireStale(ctx, now.Add(-timeout), now)
	require.NoError(t, err)
	assert.Empty(t, expired)
}

func TestRepository_List(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	late := newReservation("18:00", domain.StatusConfirmed, baseTime)
	_, err := repo.Create(ctx, late)
	require.NoError(t, err)

	early := newReservation("10:00", domain.StatusPendingPayment, baseTime)
	_, err = repo.Create(ctx, early)
	require.NoError(t, err)

	stranger := newReservation("12:00", domain.StatusPendingPayment, baseTime)
	stranger.RequesterID = 7
	_, err = repo.Create(ctx, stranger)
	require.NoError(t, err)

	t.Run("by requester ordered by slot", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ReservationFilter{RequesterID: ptr.Ptr(int64(42))})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, types.TimeString("10:00"), list[0].Slot)
		assert.Equal(t, types.TimeString("18:00"), list[1].Slot)
	})

	t.Run("by status", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ReservationFilter{
			Statuses: []domain.ReservationStatus{domain.StatusConfirmed},
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, types.TimeString("18:00"), list[0].Slot)
	})

	t.Run("by date", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ReservationFilter{Date: ptr.Ptr(lessonOn.AddDate(0, 0, 1))})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("everything", func(t *testing.T) {
		list, err := repo.List(ctx, domain.ReservationFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}

func TestRepository_Postgres_SlotTaken(t *testing.T) {
	repo := NewRepository(dbmetrics.Wrap(testutil.NewPostgresDB(t), nil))
	ctx := context.Background()

	_, err := repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newReservation("10:00", domain.StatusPendingPayment, baseTime))
	assert.ErrorIs(t, err, ErrSlotTaken)
}
