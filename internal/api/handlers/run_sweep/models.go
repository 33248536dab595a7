package run_sweep

import (
	"time"

	expireReservations "github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
)

// RunSweepRequest HTTP request model; тело опционально
type RunSweepRequest struct {
	Now *time.Time `json:"now,omitempty"` // RFC3339; по умолчанию текущее время
}

// RunSweepResponse HTTP response model
type RunSweepResponse struct {
	Now            time.Time `json:"now"`
	Cutoff         time.Time `json:"cutoff"`
	ExpiredCount   int       `json:"expiredCount"`
	ReservationIDs []int64   `json:"reservationIds"`
}

func (r *RunSweepRequest) ToUseCaseRequest() *expireReservations.Request {
	req := &expireReservations.Request{}
	if r.Now != nil {
		req.Now = *r.Now
	}
	return req
}

func FromUseCaseResponse(resp *expireReservations.Response) *RunSweepResponse {
	return &RunSweepResponse{
		Now:            resp.Now,
		Cutoff:         resp.Cutoff,
		ExpiredCount:   resp.ExpiredCount,
		ReservationIDs: resp.ReservationIDs,
	}
}
