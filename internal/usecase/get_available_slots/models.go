package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date          time.Time          // Дата, на которую запрашивались слоты
	SlotMinutes   int                // Длительность слота
	Slots         []types.TimeString // Свободные слоты в хронологическом порядке; пустой, если всё занято
	OccupiedCount int                // Количество занятых слотов
}
