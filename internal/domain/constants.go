package domain

import "time"

// Значения по умолчанию для расписания
const (
	DefaultWorkStartHour       = 10
	DefaultWorkEndHour         = 20
	DefaultSlotDurationMinutes = 30
	DefaultPaymentTimeout      = 15 * time.Minute
	DefaultSweepInterval       = 5 * time.Minute
	DefaultSweepInitialDelay   = 10 * time.Second
	DefaultReminderLead        = time.Hour
	DefaultHorizonDays         = 14
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
