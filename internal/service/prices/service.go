package prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	priceRepo "github.com/m04kA/SMC-MusicBookingService/internal/infra/storage/price"
	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices/models"
)

// Service сервис таблицы цен
type Service struct {
	priceRepo    PriceRepository
	defaultPrice float64
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса цен
// defaultPrice возвращается, если для пары нет записи
func NewService(priceRepo PriceRepository, defaultPrice float64, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		priceRepo:    priceRepo,
		defaultPrice: defaultPrice,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Resolve цена для пары: сохранённая или цена по умолчанию
// Используется и при создании брони, поэтому работает с доменными типами
func (s *Service) Resolve(ctx context.Context, tier domain.Tier, category domain.Category) (float64, error) {
	entry, err := s.priceRepo.Get(ctx, tier, category)
	if err != nil {
		if errors.Is(err, priceRepo.ErrPriceNotFound) {
			s.logger.Warn("Resolve: no price for tier=%s category=%s, using default %.2f", tier, category, s.defaultPrice)
			return s.defaultPrice, nil
		}
		return 0, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}
	return entry.Amount, nil
}

// GetPrice возвращает цену занятия
func (s *Service) GetPrice(ctx context.Context, tier, category string) (*models.PriceResponse, error) {
	domainTier, domainCategory, err := parsePair(tier, category)
	if err != nil {
		s.logger.Warn("GetPrice: invalid pair tier=%s category=%s", tier, category)
		return nil, err
	}

	entry, err := s.priceRepo.Get(ctx, domainTier, domainCategory)
	if err != nil {
		if errors.Is(err, priceRepo.ErrPriceNotFound) {
			return &models.PriceResponse{
				Tier:      tier,
				Category:  category,
				Amount:    s.defaultPrice,
				IsDefault: true,
			}, nil
		}
		s.logger.Error("GetPrice: repository error for tier=%s category=%s: %v", tier, category, err)
		return nil, fmt.Errorf("%w: GetPrice - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainPrice(entry)
	return &resp, nil
}

// SetPrice сохраняет цену; последующие брони получат новую цену, существующие нет
func (s *Service) SetPrice(ctx context.Context, req *models.SetPriceRequest) (*models.PriceResponse, error) {
	s.logger.Info("SetPrice: tier=%s category=%s amount=%.2f", req.Tier, req.Category, req.Amount)

	domainTier, domainCategory, err := parsePair(req.Tier, req.Category)
	if err != nil {
		s.logger.Warn("SetPrice: invalid pair tier=%s category=%s", req.Tier, req.Category)
		return nil, err
	}
	if req.Amount < 0 {
		s.logger.Warn("SetPrice: negative amount %.2f", req.Amount)
		return nil, ErrInvalidAmount
	}

	entry := &domain.PriceEntry{
		Tier:      domainTier,
		Category:  domainCategory,
		Amount:    req.Amount,
		UpdatedAt: s.timeProvider.Now().UTC(),
	}
	if err := s.priceRepo.Upsert(ctx, entry); err != nil {
		s.logger.Error("SetPrice: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetPrice - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainPrice(entry)
	return &resp, nil
}

// ListPrices возвращает всю таблицу цен
func (s *Service) ListPrices(ctx context.Context) (*models.PriceListResponse, error) {
	entries, err := s.priceRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListPrices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPrices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPriceList(entries), nil
}

// SeedDefaults заполняет отсутствующие цены таблицей по умолчанию
// Цены, уже выставленные оператором, не перезаписываются
func (s *Service) SeedDefaults(ctx context.Context) error {
	inserted, err := s.priceRepo.InsertMissing(ctx, domain.DefaultPriceTable(), s.timeProvider.Now())
	if err != nil {
		return fmt.Errorf("%w: SeedDefaults - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SeedDefaults: inserted %d default prices", inserted)
	return nil
}

func parsePair(tier, category string) (domain.Tier, domain.Category, error) {
	domainTier, err := domain.ParseTier(tier)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	domainCategory, err := domain.ParseCategory(category)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return domainTier, domainCategory, nil
}
