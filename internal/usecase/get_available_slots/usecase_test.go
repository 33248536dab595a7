package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

type stubRepo struct {
	occupied []types.TimeString
	err      error
	gotDate  time.Time
}

func (s *stubRepo) OccupiedSlots(_ context.Context, date time.Time) ([]types.TimeString, error) {
	s.gotDate = date
	return s.occupied, s.err
}

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("all free", func(t *testing.T) {
		uc := NewUseCase(&stubRepo{}, domain.DefaultSchedule(), logger.Nop())

		resp, err := uc.Execute(ctx, &Request{Date: june1})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 20)
		assert.Equal(t, types.TimeString("10:00"), resp.Slots[0])
		assert.Equal(t, types.TimeString("19:30"), resp.Slots[19])
	})

	t.Run("excludes exactly occupied", func(t *testing.T) {
		repo := &stubRepo{occupied: []types.TimeString{"10:00", "13:30", "19:30"}}
		uc := NewUseCase(repo, domain.DefaultSchedule(), logger.Nop())

		resp, err := uc.Execute(ctx, &Request{Date: june1.Add(15 * time.Hour)})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 17)
		assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
		assert.NotContains(t, resp.Slots, types.TimeString("13:30"))
		assert.Contains(t, resp.Slots, types.TimeString("13:00"))
		assert.Equal(t, june1, repo.gotDate, "time part must be dropped")
		for i := 1; i < len(resp.Slots); i++ {
			assert.True(t, resp.Slots[i-1].IsBefore(resp.Slots[i]))
		}
	})

	t.Run("fully booked gives empty list", func(t *testing.T) {
		schedule := domain.Schedule{StartHour: 10, EndHour: 11, SlotMinutes: 30}
		uc := NewUseCase(&stubRepo{occupied: []types.TimeString{"10:00", "10:30:00"}}, schedule, logger.Nop())

		resp, err := uc.Execute(ctx, &Request{Date: june1})
		require.NoError(t, err)
		assert.NotNil(t, resp.Slots)
		assert.Empty(t, resp.Slots)
	})

	t.Run("zero date", func(t *testing.T) {
		uc := NewUseCase(&stubRepo{}, domain.DefaultSchedule(), logger.Nop())

		_, err := uc.Execute(ctx, &Request{})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := NewUseCase(&stubRepo{err: errors.New("db down")}, domain.DefaultSchedule(), logger.Nop())

		_, err := uc.Execute(ctx, &Request{Date: june1})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
