package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

func TestSchedule_DefaultSlots(t *testing.T) {
	slots := DefaultSchedule().Slots()

	assert.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
	assert.Equal(t, types.TimeString("19:30"), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]))
	}
}

func TestSchedule_Contains(t *testing.T) {
	s := DefaultSchedule()

	assert.True(t, s.Contains("10:00"))
	assert.True(t, s.Contains("19:30"))
	assert.False(t, s.Contains("20:00"), "end hour is exclusive")
	assert.False(t, s.Contains("09:30"))
	assert.False(t, s.Contains("10:15"), "off the 30 minute grid")
	assert.False(t, s.Contains("bogus"))
}

func TestSchedule_Validate(t *testing.T) {
	assert.NoError(t, DefaultSchedule().Validate())
	assert.Error(t, Schedule{StartHour: 20, EndHour: 10, SlotMinutes: 30}.Validate())
	assert.Error(t, Schedule{StartHour: 10, EndHour: 20, SlotMinutes: 45}.Validate())
}

func TestDefaultPriceTable(t *testing.T) {
	table := DefaultPriceTable()
	assert.Len(t, table, len(Tiers)*len(Categories))

	for _, e := range table {
		if e.Tier == TierDuet && e.Category == CategoryVocal {
			assert.Equal(t, 1200.0, e.Amount)
		}
	}
}

func TestParseInstrument(t *testing.T) {
	got, err := ParseInstrument(CategoryPercussion, "timpani")
	assert.NoError(t, err)
	assert.Equal(t, InstrumentTimpani, got)

	_, err = ParseInstrument(CategoryPiano, "drums")
	assert.ErrorIs(t, err, ErrInstrumentNotAllowed)

	_, err = ParseInstrument(CategoryPercussion, "triangle")
	assert.ErrorIs(t, err, ErrUnknownInstrument)
}
