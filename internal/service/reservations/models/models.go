package models

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// Request модели

// ListReservationsRequest фильтр списка броней; все поля опциональны
type ListReservationsRequest struct {
	RequesterID *int64   `json:"requesterId,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`
	Date        *string  `json:"date,omitempty"` // "2024-06-01"
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{RequesterID: r.RequesterID}

	for _, s := range r.Statuses {
		status, err := domain.ParseReservationStatus(s)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// Response модели

// ReservationResponse данные брони
type ReservationResponse struct {
	ID          int64      `json:"id"`
	RequesterID int64      `json:"requesterId"`
	Tier        string     `json:"tier"`
	Category    string     `json:"category"`
	Instrument  *string    `json:"instrument,omitempty"`
	Date        string     `json:"date"` // "2024-06-01"
	Slot        string     `json:"slot"` // "10:00"
	Status      string     `json:"status"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	ExpiredAt   *time.Time `json:"expiredAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// TransitionResponse результат подтверждения или отмены
// Changed = false, если бронь уже была в целевом или конечном статусе
type TransitionResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Changed     bool                `json:"changed"`
}

// FromDomainReservation конвертирует доменную бронь в ответ
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Tier:        string(r.Tier),
		Category:    string(r.Category),
		Date:        r.Date.Format(domain.DateFormat),
		Slot:        r.Slot.String(),
		Status:      string(r.Status),
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		ConfirmedAt: r.ConfirmedAt,
		CancelledAt: r.CancelledAt,
		ExpiredAt:   r.ExpiredAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Instrument != nil {
		instrument := string(*r.Instrument)
		resp.Instrument = &instrument
	}
	return resp
}

// FromDomainReservationList конвертирует список броней
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}
