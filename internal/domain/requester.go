package domain

import "time"

// Requester пользователь чата, создающий брони
type Requester struct {
	UserID       int64
	Username     *string
	FirstName    *string
	LanguageCode *string
	JoinedAt     time.Time
}
