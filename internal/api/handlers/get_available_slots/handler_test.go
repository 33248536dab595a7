package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-MusicBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-MusicBookingService/pkg/logger"
	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*getAvailableSlots.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := new(mockUseCase)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{Date: date}).Return(&getAvailableSlots.Response{
		Date:          date,
		SlotMinutes:   30,
		Slots:         []types.TimeString{"10:00", "11:00"},
		OccupiedCount: 18,
	}, nil)

	rec := get(NewHandler(uc, logger.Nop()), "/api/v1/slots?date=2024-06-01")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-06-01", body.Date)
	assert.Equal(t, 30, body.DurationMinutes)
	assert.Equal(t, []string{"10:00", "11:00"}, body.Slots)
	uc.AssertExpectations(t)
}

func TestHandler_AllTakenIsEmptyArray(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{
		Date:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Slots: []types.TimeString{},
	}, nil)

	rec := get(NewHandler(uc, logger.Nop()), "/api/v1/slots?date=2024-06-01")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandler_BadRequests(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots?date=2024-13-01").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots?date=tomorrow").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_InternalError(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db is down"))

	rec := get(NewHandler(uc, logger.Nop()), "/api/v1/slots?date=2024-06-01")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
