package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/events"
	reservationRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/reservations/models"
)

// Service сервис чтения и переходов статуса броней
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainReservation(res)
	return &resp, nil
}

// List возвращает брони по фильтру
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// ListActiveByRequester активные брони пользователя ("мои записи")
func (s *Service) ListActiveByRequester(ctx context.Context, requesterID int64) (*models.ReservationListResponse, error) {
	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
		RequesterID: &requesterID,
		Statuses:    domain.ActiveStatuses,
	})
	if err != nil {
		s.logger.Error("ListActiveByRequester: repository error for requester=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: ListActiveByRequester - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReservationList(list), nil
}

// Confirm подтверждает оплату: pending_payment -> confirmed
// Повторное подтверждение не меняет бронь и не публикует событие
func (s *Service) Confirm(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	s.logger.Info("Confirm: confirming reservation id=%d", id)
	now := s.timeProvider.Now()

	res, err := s.reservationRepo.TransitionStatus(ctx, id,
		[]domain.ReservationStatus{domain.StatusPendingPayment}, domain.StatusConfirmed, now)
	switch {
	case err == nil:
		s.publisher.Publish(ctx, events.NewReservationEvent(domain.EventReservationConfirmed, res, now))
		s.logger.Info("Confirm: reservation id=%d confirmed", id)
		return &models.TransitionResponse{Reservation: models.FromDomainReservation(res), Changed: true}, nil

	case errors.Is(err, reservationRepo.ErrStatusConflict):
		if res.Status == domain.StatusConfirmed {
			s.logger.Info("Confirm: reservation id=%d is already confirmed", id)
			return &models.TransitionResponse{Reservation: models.FromDomainReservation(res), Changed: false}, nil
		}
		s.logger.Warn("Confirm: reservation id=%d cannot be confirmed from status=%s", id, res.Status)
		return nil, ErrInvalidTransition

	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		s.logger.Warn("Confirm: reservation id=%d not found", id)
		return nil, ErrReservationNotFound

	default:
		s.logger.Error("Confirm: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}
}

// Cancel отменяет бронь из pending_payment или confirmed
// Для уже отменённой или истёкшей брони ничего не меняется
func (s *Service) Cancel(ctx context.Context, id int64) (*models.TransitionResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d", id)
	now := s.timeProvider.Now()

	res, err := s.reservationRepo.TransitionStatus(ctx, id, domain.CancellableStatuses, domain.StatusCancelled, now)
	switch {
	case err == nil:
		s.publisher.Publish(ctx, events.NewReservationEvent(domain.EventReservationCancelled, res, now))
		s.logger.Info("Cancel: reservation id=%d cancelled", id)
		return &models.TransitionResponse{Reservation: models.FromDomainReservation(res), Changed: true}, nil

	case errors.Is(err, reservationRepo.ErrStatusConflict):
		s.logger.Info("Cancel: reservation id=%d already in status=%s, nothing to do", id, res.Status)
		return &models.TransitionResponse{Reservation: models.FromDomainReservation(res), Changed: false}, nil

	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		s.logger.Warn("Cancel: reservation id=%d not found", id)
		return nil, ErrReservationNotFound

	default:
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
}
