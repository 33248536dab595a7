package get_available_slots

import (
	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// freeSlots вычитает занятые слоты из сетки расписания
// Порядок сетки сохраняется; занятые метки вне сетки игнорируются
func freeSlots(schedule domain.Schedule, occupied []types.TimeString) []types.TimeString {
	taken := make(map[types.TimeString]struct{}, len(occupied))
	for _, slot := range occupied {
		// Нормализуем "9:00" и "09:00:00" к виду "09:00"
		if normalized, err := types.NewTimeStringFromString(slot.String()); err == nil {
			slot = normalized
		}
		taken[slot] = struct{}{}
	}

	all := schedule.Slots()
	free := make([]types.TimeString, 0, len(all))
	for _, slot := range all {
		if _, ok := taken[slot]; ok {
			continue
		}
		free = append(free, slot)
	}
	return free
}
