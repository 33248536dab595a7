package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", in: "14:30", want: "14:30"},
		{name: "hh:mm:ss from postgres", in: "09:00:00", want: "09:00"},
		{name: "single digit hour", in: "9:00", want: "09:00"},
		{name: "garbage", in: "noon", wantErr: true},
		{name: "out of range", in: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	start := TimeString("19:30")

	next, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), next)
	assert.True(t, start.IsBefore(next))
	assert.True(t, next.IsAfter(start))

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:00").On(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, loc), got)
}

func TestTimeString_ScanValue(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("10:30")))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err := TimeString("11:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "11:00", v)

	assert.Error(t, ts.Scan(42))
}
