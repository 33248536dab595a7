package models

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// RegisterRequest данные пользователя чата
type RegisterRequest struct {
	UserID       int64   `json:"userId"`
	Username     *string `json:"username,omitempty"`
	FirstName    *string `json:"firstName,omitempty"`
	LanguageCode *string `json:"languageCode,omitempty"`
}

// RequesterResponse сохранённый пользователь
type RequesterResponse struct {
	UserID       int64     `json:"userId"`
	Username     *string   `json:"username,omitempty"`
	FirstName    *string   `json:"firstName,omitempty"`
	LanguageCode *string   `json:"languageCode,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
	Created      bool      `json:"created"`
}

// FromDomainRequester конвертирует доменного пользователя в ответ
func FromDomainRequester(r *domain.Requester, created bool) *RequesterResponse {
	return &RequesterResponse{
		UserID:       r.UserID,
		Username:     r.Username,
		FirstName:    r.FirstName,
		LanguageCode: r.LanguageCode,
		JoinedAt:     r.JoinedAt,
		Created:      created,
	}
}
