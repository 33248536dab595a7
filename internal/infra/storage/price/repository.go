package price

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/psqlbuilder"
)

const table = "prices"

var columns = []string{"tier", "category", "price", "updated_at"}

// Repository репозиторий таблицы цен
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает цену для пары (tier, category)
func (r *Repository) Get(ctx context.Context, tier domain.Tier, category domain.Category) (*domain.PriceEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"tier": string(tier), "category": string(category)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.PriceEntry
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&entry.Tier, &entry.Category, &entry.Amount, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan price: %v", ErrScanRow, err)
	}
	return &entry, nil
}

// List возвращает всю таблицу цен
func (r *Repository) List(ctx context.Context) ([]*domain.PriceEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("tier ASC", "category ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.PriceEntry, 0)
	for rows.Next() {
		var entry domain.PriceEntry
		if err := rows.Scan(&entry.Tier, &entry.Category, &entry.Amount, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return entries, nil
}

// Upsert вставляет цену или перезаписывает существующую
func (r *Repository) Upsert(ctx context.Context, entry *domain.PriceEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(string(entry.Tier), string(entry.Category), entry.Amount, entry.UpdatedAt.UTC()).
		Suffix("ON CONFLICT (tier, category) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// InsertMissing вставляет цены, которых ещё нет; существующие не трогает
// Возвращает количество добавленных строк
func (r *Repository) InsertMissing(ctx context.Context, entries []domain.PriceEntry, now time.Time) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).Columns(columns...)
	for _, e := range entries {
		insertBuilder = insertBuilder.Values(string(e.Tier), string(e.Category), e.Amount, now.UTC())
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (tier, category) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - get rows affected: %v", ErrExecQuery, err)
	}
	return inserted, nil
}
