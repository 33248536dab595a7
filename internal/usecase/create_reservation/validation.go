package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// parsedRequest проверенные доменные значения запроса
type parsedRequest struct {
	tier       domain.Tier
	category   domain.Category
	instrument *domain.Instrument
	date       time.Time
	slot       types.TimeString
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, schedule domain.Schedule) (*parsedRequest, error) {
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterId must be positive", ErrInvalidInput)
	}

	tier, err := domain.ParseTier(req.Tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var instrument *domain.Instrument
	if req.Instrument != nil && *req.Instrument != "" {
		parsed, err := domain.ParseInstrument(category, *req.Instrument)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		instrument = &parsed
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	// Приводим "10:00:00" к "10:00": в индексе хранится короткая форма
	slot, err := types.NewTimeStringFromString(req.Slot.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	if !schedule.Contains(slot) {
		return nil, fmt.Errorf("%w: %s is not on the %d-minute grid %02d:00-%02d:00",
			ErrInvalidTimeSlot, slot, schedule.SlotMinutes, schedule.StartHour, schedule.EndHour)
	}

	return &parsedRequest{
		tier:       tier,
		category:   category,
		instrument: instrument,
		date:       domain.DateOnly(req.Date),
		slot:       slot,
	}, nil
}

// validateDate проверяет, что дата попадает в окно [сегодня, сегодня+horizonDays) в часовом поясе школы
// horizonDays <= 0 снимает верхнюю границу
func validateDate(date time.Time, now time.Time, loc *time.Location, horizonDays int) error {
	today := domain.DateOnly(now.In(loc))
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	if horizonDays > 0 && !date.Before(today.AddDate(0, 0, horizonDays)) {
		return fmt.Errorf("%w: %s is beyond the %d-day booking horizon",
			ErrInvalidDate, date.Format(domain.DateFormat), horizonDays)
	}
	return nil
}

// isOccupied проверяет, есть ли слот среди занятых
func isOccupied(slot types.TimeString, occupied []types.TimeString) bool {
	for _, o := range occupied {
		if o == slot {
			return true
		}
	}
	return false
}
