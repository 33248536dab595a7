package domain

import (
	"fmt"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// Schedule сетка слотов рабочего дня: [StartHour, EndHour) с шагом SlotMinutes
type Schedule struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// DefaultSchedule 10:00-20:00, слоты по 30 минут
func DefaultSchedule() Schedule {
	return Schedule{
		StartHour:   DefaultWorkStartHour,
		EndHour:     DefaultWorkEndHour,
		SlotMinutes: DefaultSlotDurationMinutes,
	}
}

// Validate проверяет согласованность сетки
func (s Schedule) Validate() error {
	if s.StartHour < 0 || s.EndHour > 24 || s.StartHour >= s.EndHour {
		return fmt.Errorf("invalid working hours %d-%d", s.StartHour, s.EndHour)
	}
	if s.SlotMinutes <= 0 || (s.EndHour-s.StartHour)*60%s.SlotMinutes != 0 {
		return fmt.Errorf("slot duration %d does not divide working hours", s.SlotMinutes)
	}
	return nil
}

// Slots все слоты дня в хронологическом порядке
func (s Schedule) Slots() []types.TimeString {
	if s.SlotMinutes <= 0 {
		return []types.TimeString{}
	}
	slots := make([]types.TimeString, 0, (s.EndHour-s.StartHour)*60/s.SlotMinutes)
	for m := s.StartHour * 60; m < s.EndHour*60; m += s.SlotMinutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}
	return slots
}

// Contains true, если метка лежит на сетке
func (s Schedule) Contains(slot types.TimeString) bool {
	m, err := slot.Minutes()
	if err != nil || s.SlotMinutes <= 0 {
		return false
	}
	if m < s.StartHour*60 || m >= s.EndHour*60 {
		return false
	}
	return (m-s.StartHour*60)%s.SlotMinutes == 0
}
