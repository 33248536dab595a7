package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MusicBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

const table = "reservations"

var columns = []string{
	"id",
	"requester_id",
	"tier",
	"category",
	"instrument",
	"reservation_date",
	"time_slot",
	"status",
	"price",
	"created_at",
	"confirmed_at",
	"cancelled_at",
	"expired_at",
	"updated_at",
}

// Repository репозиторий броней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет бронь
// Если слот уже занят активной бронью, уникальный частичный индекс
// reservations_active_slot_uidx отклоняет вставку и возвращается ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"requester_id",
			"tier",
			"category",
			"instrument",
			"reservation_date",
			"time_slot",
			"status",
			"price",
			"created_at",
			"confirmed_at",
			"updated_at",
		).
		Values(
			res.RequesterID,
			string(res.Tier),
			string(res.Category),
			instrumentValue(res.Instrument),
			domain.DateOnly(res.Date),
			res.Slot,
			string(res.Status),
			res.Price,
			res.CreatedAt.UTC(),
			utcPtr(res.ConfirmedAt),
			res.UpdatedAt.UTC(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.Date = domain.DateOnly(res.Date)
	return res, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}
	return res, nil
}

// List возвращает брони по фильтру, упорядоченные по дате, слоту и ID
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("reservation_date ASC", "time_slot ASC", "id ASC")

	if filter.RequesterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"requester_id": *filter.RequesterID})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": domain.DateOnly(*filter.Date)})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": domain.DateOnly(*filter.DateFrom)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// OccupiedSlots слоты даты, занятые активными бронями
func (r *Repository) OccupiedSlots(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot").
		From(table).
		Where(squirrel.Eq{
			"reservation_date": domain.DateOnly(date),
			"status":           statusStrings(domain.ActiveStatuses),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: OccupiedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OccupiedSlots - rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}

// TransitionStatus атомарно переводит бронь в статус to, только если текущий статус входит в from
// Если бронь существует, но статус другой, возвращается её текущее состояние вместе с ErrStatusConflict
func (r *Repository) TransitionStatus(
	ctx context.Context,
	id int64,
	from []domain.ReservationStatus,
	to domain.ReservationStatus,
	at time.Time,
) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	at = at.UTC()
	updateBuilder := psqlbuilder.Update(table).
		Set("status", string(to)).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": statusStrings(from)})

	if column := transitionColumn(to); column != "" {
		updateBuilder = updateBuilder.Set(column, at)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	// Ни одна строка не обновлена: брони нет либо статус уже не из from
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return current, ErrStatusConflict
}

// ExpireStale переводит в expired все pending_payment, созданные раньше cutoff
// Возвращает истёкшие брони
func (r *Repository) ExpireStale(ctx context.Context, cutoff time.Time, now time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now = now.UTC()
	query, args, err := psqlbuilder.Update(table).
		Set("status", string(domain.StatusExpired)).
		Set("expired_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": string(domain.StatusPendingPayment)}).
		Where(squirrel.Lt{"created_at": cutoff.UTC()}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: ExpireStale - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: ExpireStale - rows error: %v", ErrScanRow, err)
	}
	rows.Close()

	if len(ids) == 0 {
		return []*domain.Reservation{}, nil
	}
	return r.getByIDs(ctx, ids)
}

func (r *Repository) getByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(
		&res.ID,
		&res.RequesterID,
		&res.Tier,
		&res.Category,
		&res.Instrument,
		&res.Date,
		&res.Slot,
		&res.Status,
		&res.Price,
		&res.CreatedAt,
		&res.ConfirmedAt,
		&res.CancelledAt,
		&res.ExpiredAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	res.Date = domain.DateOnly(res.Date)
	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс броней
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func transitionColumn(to domain.ReservationStatus) string {
	switch to {
	case domain.StatusConfirmed:
		return "confirmed_at"
	case domain.StatusCancelled:
		return "cancelled_at"
	case domain.StatusExpired:
		return "expired_at"
	default:
		return ""
	}
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func instrumentValue(i *domain.Instrument) interface{} {
	if i == nil {
		return nil
	}
	return string(*i)
}

func utcPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// isUniqueViolation распознаёт нарушение уникального индекса в Postgres (23505) и SQLite
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
