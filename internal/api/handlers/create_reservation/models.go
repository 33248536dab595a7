package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-MusicBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	RequesterID       int64   `json:"requesterId"`
	Tier              string  `json:"tier"`
	Category          string  `json:"category"`
	Instrument        *string `json:"instrument,omitempty"`
	Date              string  `json:"date"` // "2024-06-01"
	Slot              string  `json:"slot"` // "10:00"
	OverrideConfirmed bool    `json:"overrideConfirmed,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64      `json:"id"`
	RequesterID int64      `json:"requesterId"`
	Tier        string     `json:"tier"`
	Category    string     `json:"category"`
	Instrument  *string    `json:"instrument,omitempty"`
	Date        string     `json:"date"`
	Slot        string     `json:"slot"`
	Status      string     `json:"status"`
	Price       float64    `json:"price"`
	CreatedAt   time.Time  `json:"createdAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		RequesterID:       r.RequesterID,
		Tier:              r.Tier,
		Category:          r.Category,
		Instrument:        r.Instrument,
		Date:              date,
		Slot:              types.TimeString(r.Slot),
		OverrideConfirmed: r.OverrideConfirmed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		RequesterID: resp.RequesterID,
		Tier:        resp.Tier,
		Category:    resp.Category,
		Instrument:  resp.Instrument,
		Date:        resp.Date.Format(domain.DateFormat),
		Slot:        resp.Slot.String(),
		Status:      resp.Status,
		Price:       resp.Price,
		CreatedAt:   resp.CreatedAt,
		ConfirmedAt: resp.ConfirmedAt,
	}
}
