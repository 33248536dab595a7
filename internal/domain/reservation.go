package domain

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// ReservationStatus статус брони
type ReservationStatus string

const (
	StatusPendingPayment ReservationStatus = "pending_payment"
	StatusConfirmed      ReservationStatus = "confirmed"
	StatusCancelled      ReservationStatus = "cancelled"
	StatusExpired        ReservationStatus = "expired"
)

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []ReservationStatus{
	StatusPendingPayment,
	StatusConfirmed,
}

// CancellableStatuses статусы, из которых возможна отмена
var CancellableStatuses = ActiveStatuses

// ParseReservationStatus проверяет строку статуса
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusExpired:
		return ReservationStatus(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

// IsActive true для pending_payment и confirmed
func (s ReservationStatus) IsActive() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// IsTerminal true для cancelled и expired: из них переходов нет
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired
}

// Reservation бронь урока на слот
type Reservation struct {
	ID          int64
	RequesterID int64
	Tier        Tier
	Category    Category
	Instrument  *Instrument
	Date        time.Time        // календарная дата, полночь UTC
	Slot        types.TimeString // начало слота, "14:30"
	Status      ReservationStatus
	Price       float64 // фиксируется при создании

	CreatedAt   time.Time
	ConfirmedAt *time.Time
	CancelledAt *time.Time
	ExpiredAt   *time.Time
	UpdatedAt   time.Time
}

// IsActive true, если бронь занимает слот
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// StartsAt момент начала урока в указанной локации
func (r *Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	return r.Slot.On(r.Date, loc)
}

// ReservationFilter фильтр списка броней
type ReservationFilter struct {
	RequesterID *int64              // опционально
	Statuses    []ReservationStatus // пустой = все статусы
	Date        *time.Time          // опционально, конкретная дата
	DateFrom    *time.Time          // опционально, нижняя граница даты (включительно)
}

// DateOnly отбрасывает время, приводя дату к полуночи UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
