package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/events"
	reservationRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/reservation"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	priceResolver   PriceResolver
	txManager       TransactionManager
	publisher       EventPublisher
	schedule        domain.Schedule
	location        *time.Location
	horizonDays     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	priceResolver PriceResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	schedule domain.Schedule,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		priceResolver:   priceResolver,
		txManager:       txManager,
		publisher:       publisher,
		schedule:        schedule,
		location:        location,
		horizonDays:     domain.DefaultHorizonDays,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithHorizon задаёт, на сколько дней вперёд можно бронировать (включая сегодня)
func (uc *UseCase) WithHorizon(days int) *UseCase {
	uc.horizonDays = days
	return uc
}

// Execute выполняет use case создания брони
// Проверка занятости и вставка идут в одной транзакции; гонку двух вставок
// на один слот разрешает уникальный индекс активных броней
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%d, tier=%s, category=%s, date=%s, slot=%s, override=%t",
		req.RequesterID, req.Tier, req.Category, req.Date.Format(domain.DateFormat), req.Slot, req.OverrideConfirmed)

	// 1. Валидация входных данных
	parsed, err := validateRequest(req, uc.schedule)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(parsed.date, now, uc.location, uc.horizonDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 3. Выполняем операции с БД в транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Проверяем, что слот свободен
		occupied, err := uc.reservationRepo.OccupiedSlots(txCtx, parsed.date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get occupied slots: %v", err)
			return fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
		}
		if isOccupied(parsed.slot, occupied) {
			uc.logger.Warn("CreateReservation: slot %s on %s is taken",
				parsed.slot, parsed.date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 3.2. Фиксируем цену на момент создания
		price, err := uc.priceResolver.Resolve(txCtx, parsed.tier, parsed.category)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to resolve price: %v", err)
			return fmt.Errorf("%w: failed to resolve price: %v", ErrInternal, err)
		}

		// 3.3. Создаём бронь; оператор может сразу подтвердить её
		res := &domain.Reservation{
			RequesterID: req.RequesterID,
			Tier:        parsed.tier,
			Category:    parsed.category,
			Instrument:  parsed.instrument,
			Date:        parsed.date,
			Slot:        parsed.slot,
			Status:      domain.StatusPendingPayment,
			Price:       price,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if req.OverrideConfirmed {
			res.Status = domain.StatusConfirmed
			confirmedAt := now
			res.ConfirmedAt = &confirmedAt
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: slot %s on %s was taken concurrently",
					parsed.slot, parsed.date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateReservation: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// 4. Публикуем событие после фиксации транзакции
	uc.publisher.Publish(ctx, events.NewReservationEvent(domain.EventReservationCreated, result, now))

	uc.logger.Info("CreateReservation: successfully created reservation id=%d status=%s price=%.2f",
		result.ID, result.Status, result.Price)

	return toResponse(result), nil
}

func toResponse(r *domain.Reservation) *Response {
	resp := &Response{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Tier:        string(r.Tier),
		Category:    string(r.Category),
		Date:        r.Date,
		Slot:        r.Slot,
		Status:      string(r.Status),
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		ConfirmedAt: r.ConfirmedAt,
	}
	if r.Instrument != nil {
		instrument := string(*r.Instrument)
		resp.Instrument = &instrument
	}
	return resp
}
