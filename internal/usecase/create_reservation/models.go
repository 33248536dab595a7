package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	RequesterID       int64            // ID пользователя чата
	Tier              string           // solo | duet | ensemble
	Category          string           // percussion | strings | brass | piano | vocal | mix
	Instrument        *string          // Только для percussion (опционально)
	Date              time.Time        // Дата урока (без времени)
	Slot              types.TimeString // Начало слота, например "10:00"
	OverrideConfirmed bool             // Бронь оператора: сразу confirmed, без оплаты
}

// Response модель ответа с созданной бронью
type Response struct {
	ID          int64
	RequesterID int64
	Tier        string
	Category    string
	Instrument  *string
	Date        time.Time
	Slot        types.TimeString
	Status      string
	Price       float64 // Цена, зафиксированная при создании

	CreatedAt   time.Time
	ConfirmedAt *time.Time
}
