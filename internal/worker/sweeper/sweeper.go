package sweeper

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
)

// defaultRunTimeout ограничение на один прогон
const defaultRunTimeout = 30 * time.Second

// Sweeper периодически запускает истечение неоплаченных броней
type Sweeper struct {
	useCase      ExpireUseCase
	interval     time.Duration
	initialDelay time.Duration
	runTimeout   time.Duration
	logger       Logger
}

// New создает воркер; первый прогон через initialDelay, далее каждые interval
func New(useCase ExpireUseCase, interval, initialDelay time.Duration, logger Logger) *Sweeper {
	return &Sweeper{
		useCase:      useCase,
		interval:     interval,
		initialDelay: initialDelay,
		runTimeout:   defaultRunTimeout,
		logger:       logger,
	}
}

// Run блокируется до отмены ctx
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Sweeper: started, interval=%s, initial delay=%s", s.interval, s.initialDelay)

	if s.initialDelay > 0 {
		timer := time.NewTimer(s.initialDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Sweeper: stopped before first run")
			return
		case <-timer.C:
		}
	}
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce ошибки прогона только логируются: следующий тик повторит попытку
func (s *Sweeper) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	resp, err := s.useCase.Execute(runCtx, &expire_reservations.Request{Now: time.Now()})
	if err != nil {
		s.logger.Error("Sweeper: run failed: %v", err)
		return
	}
	if resp.ExpiredCount > 0 {
		s.logger.Info("Sweeper: expired %d reservations", resp.ExpiredCount)
	}
}
