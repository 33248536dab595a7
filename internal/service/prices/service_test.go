package prices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	priceRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/price"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices/models"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
)

type mockPriceRepo struct {
	mock.Mock
}

func (m *mockPriceRepo) Get(ctx context.Context, tier domain.Tier, category domain.Category) (*domain.PriceEntry, error) {
	args := m.Called(ctx, tier, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceEntry), args.Error(1)
}

func (m *mockPriceRepo) List(ctx context.Context) ([]*domain.PriceEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PriceEntry), args.Error(1)
}

func (m *mockPriceRepo) Upsert(ctx context.Context, entry *domain.PriceEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockPriceRepo) InsertMissing(ctx context.Context, entries []domain.PriceEntry, now time.Time) (int64, error) {
	args := m.Called(ctx, entries, now)
	return args.Get(0).(int64), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var clock = fixedClock{now: time.Date(2024, 5, 30, 12, 0, 0, 0, time.UTC)}

func newService(repo *mockPriceRepo) *Service {
	return NewService(repo, domain.FallbackPrice, clock, logger.Nop())
}

func TestService_GetPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("stored price", func(t *testing.T) {
		repo := new(mockPriceRepo)
		repo.On("Get", ctx, domain.TierDuet, domain.CategoryVocal).
			Return(&domain.PriceEntry{Tier: domain.TierDuet, Category: domain.CategoryVocal, Amount: 1200}, nil)

		resp, err := newService(repo).GetPrice(ctx, "duet", "vocal")
		require.NoError(t, err)
		assert.Equal(t, 1200.0, resp.Amount)
		assert.False(t, resp.IsDefault)
		repo.AssertExpectations(t)
	})

	t.Run("fallback when missing", func(t *testing.T) {
		repo := new(mockPriceRepo)
		repo.On("Get", ctx, domain.TierSolo, domain.CategoryMix).Return(nil, priceRepo.ErrPriceNotFound)

		resp, err := newService(repo).GetPrice(ctx, "solo", "mix")
		require.NoError(t, err)
		assert.Equal(t, 800.0, resp.Amount)
		assert.True(t, resp.IsDefault)
	})

	t.Run("unknown tier", func(t *testing.T) {
		repo := new(mockPriceRepo)

		_, err := newService(repo).GetPrice(ctx, "quartet", "vocal")
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Get")
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := new(mockPriceRepo)
		repo.On("Get", ctx, domain.TierSolo, domain.CategoryMix).Return(nil, errors.New("db down"))

		_, err := newService(repo).GetPrice(ctx, "solo", "mix")
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPriceRepo)
	repo.On("Get", ctx, domain.TierEnsemble, domain.CategoryBrass).Return(nil, priceRepo.ErrPriceNotFound)

	svc := NewService(repo, 950, clock, logger.Nop())
	amount, err := svc.Resolve(ctx, domain.TierEnsemble, domain.CategoryBrass)
	require.NoError(t, err)
	assert.Equal(t, 950.0, amount)
}

func TestService_SetPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("negative amount", func(t *testing.T) {
		repo := new(mockPriceRepo)

		_, err := newService(repo).SetPrice(ctx, &models.SetPriceRequest{Tier: "solo", Category: "piano", Amount: -1})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		repo.AssertNotCalled(t, "Upsert")
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := new(mockPriceRepo)

		_, err := newService(repo).SetPrice(ctx, &models.SetPriceRequest{Tier: "solo", Category: "harp", Amount: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero is allowed", func(t *testing.T) {
		repo := new(mockPriceRepo)
		repo.On("Upsert", ctx, mock.MatchedBy(func(e *domain.PriceEntry) bool {
			return e.Tier == domain.TierSolo && e.Category == domain.CategoryPiano && e.Amount == 0 &&
				e.UpdatedAt.Equal(clock.now)
		})).Return(nil)

		resp, err := newService(repo).SetPrice(ctx, &models.SetPriceRequest{Tier: "solo", Category: "piano", Amount: 0})
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.Amount)
		repo.AssertExpectations(t)
	})
}

func TestService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPriceRepo)
	repo.On("InsertMissing", ctx, domain.DefaultPriceTable(), clock.now).Return(int64(18), nil)

	require.NoError(t, newService(repo).SeedDefaults(ctx))
	repo.AssertExpectations(t)
}

func TestService_ListPrices(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPriceRepo)
	repo.On("List", ctx).Return([]*domain.PriceEntry{
		{Tier: domain.TierSolo, Category: domain.CategoryPiano, Amount: 800},
	}, nil)

	resp, err := newService(repo).ListPrices(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Prices, 1)
	assert.Equal(t, "piano", resp.Prices[0].Category)
}
