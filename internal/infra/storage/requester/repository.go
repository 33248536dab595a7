package requester

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// requesterRow строка таблицы requesters
type requesterRow struct {
	UserID       int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Username     *string   `gorm:"column:username"`
	FirstName    *string   `gorm:"column:first_name"`
	LanguageCode *string   `gorm:"column:language_code"`
	JoinedAt     time.Time `gorm:"column:joined_at;not null"`
}

func (requesterRow) TableName() string {
	return "requesters"
}

func (r requesterRow) toDomain() *domain.Requester {
	return &domain.Requester{
		UserID:       r.UserID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LanguageCode: r.LanguageCode,
		JoinedAt:     r.JoinedAt,
	}
}

// Repository репозиторий пользователей на GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Register сохраняет пользователя, если его ещё нет
// Повторная регистрация возвращает сохранённую запись без изменений; created = false
func (r *Repository) Register(ctx context.Context, req *domain.Requester) (*domain.Requester, bool, error) {
	row := requesterRow{
		UserID:       req.UserID,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LanguageCode: req.LanguageCode,
		JoinedAt:     req.JoinedAt.UTC(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return nil, false, fmt.Errorf("%w: Register - insert: %v", ErrQuery, result.Error)
	}
	created := result.RowsAffected > 0

	stored, err := r.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

// GetByID получает пользователя по идентификатору чата
func (r *Repository) GetByID(ctx context.Context, userID int64) (*domain.Requester, error) {
	var row requesterRow
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequesterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - select: %v", ErrQuery, err)
	}
	return row.toDomain(), nil
}
