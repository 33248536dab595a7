package price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/testutil"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
)

var seededAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(dbmetrics.Wrap(testutil.NewSQLiteDB(t), nil))
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Get(context.Background(), domain.TierSolo, domain.CategoryPiano)
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestRepository_Upsert(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.PriceEntry{
		Tier: domain.TierDuet, Category: domain.CategoryVocal, Amount: 1200, UpdatedAt: seededAt,
	}))

	got, err := repo.Get(ctx, domain.TierDuet, domain.CategoryVocal)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Amount)

	later := seededAt.Add(time.Hour)
	require.NoError(t, repo.Upsert(ctx, &domain.PriceEntry{
		Tier: domain.TierDuet, Category: domain.CategoryVocal, Amount: 1350.5, UpdatedAt: later,
	}))

	got, err = repo.Get(ctx, domain.TierDuet, domain.CategoryVocal)
	require.NoError(t, err)
	assert.Equal(t, 1350.5, got.Amount)
	assert.True(t, later.Equal(got.UpdatedAt))
}

func TestRepository_InsertMissingKeepsExisting(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.PriceEntry{
		Tier: domain.TierSolo, Category: domain.CategoryPiano, Amount: 999, UpdatedAt: seededAt,
	}))

	table := domain.DefaultPriceTable()
	inserted, err := repo.InsertMissing(ctx, table, seededAt)
	require.NoError(t, err)
	assert.Equal(t, int64(len(table)-1), inserted)

	got, err := repo.Get(ctx, domain.TierSolo, domain.CategoryPiano)
	require.NoError(t, err)
	assert.Equal(t, 999.0, got.Amount, "operator price must survive seeding")

	// Повторный посев ничего не добавляет
	inserted, err = repo.InsertMissing(ctx, table, seededAt)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(table))
}

func TestRepository_List_Empty(t *testing.T) {
	repo := newRepo(t)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
