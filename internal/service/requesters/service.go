package requesters

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	requesterRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/requester"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters/models"
)

// Service сервис пользователей чата
type Service struct {
	requesterRepo RequesterRepository
	timeProvider  TimeProvider
	logger        Logger
}

func NewService(requesterRepo RequesterRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		requesterRepo: requesterRepo,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Register регистрирует пользователя при первом обращении
// Повторный вызов возвращает сохранённую запись без изменений
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.RequesterResponse, error) {
	if req.UserID <= 0 {
		s.logger.Warn("Register: invalid user id=%d", req.UserID)
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	stored, created, err := s.requesterRepo.Register(ctx, &domain.Requester{
		UserID:       req.UserID,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LanguageCode: req.LanguageCode,
		JoinedAt:     s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Error("Register: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("Register: new requester user=%d", req.UserID)
	}
	return models.FromDomainRequester(stored, created), nil
}

// GetByID получает пользователя
func (s *Service) GetByID(ctx context.Context, userID int64) (*models.RequesterResponse, error) {
	stored, err := s.requesterRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, requesterRepo.ErrRequesterNotFound) {
			return nil, ErrRequesterNotFound
		}
		s.logger.Error("GetByID: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRequester(stored, false), nil
}
