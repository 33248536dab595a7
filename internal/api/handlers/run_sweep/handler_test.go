package run_sweep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	expireReservations "github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *expireReservations.Request) (*expireReservations.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*expireReservations.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandler_WithExplicitNow(t *testing.T) {
	now := time.Date(2024, 5, 30, 12, 16, 0, 0, time.UTC)
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *expireReservations.Request) bool {
		return req.Now.Equal(now)
	})).Return(&expireReservations.Response{
		Now:            now,
		Cutoff:         now.Add(-15 * time.Minute),
		ExpiredCount:   2,
		ReservationIDs: []int64{3, 4},
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{"now":"2024-05-30T12:16:00Z"}`))
	NewHandler(uc, logger.Nop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body RunSweepResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.ExpiredCount)
	assert.Equal(t, []int64{3, 4}, body.ReservationIDs)
	uc.AssertExpectations(t)
}

func TestHandler_EmptyBodyUsesCurrentTime(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *expireReservations.Request) bool {
		return req.Now.IsZero()
	})).Return(&expireReservations.Response{ReservationIDs: []int64{}}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandler_BadBody(t *testing.T) {
	uc := new(mockUseCase)
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/sweeps", strings.NewReader(`{"now":"yesterday"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
