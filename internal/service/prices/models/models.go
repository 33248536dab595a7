package models

import (
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// PriceResponse цена для пары (tier, category)
type PriceResponse struct {
	Tier      string     `json:"tier"`
	Category  string     `json:"category"`
	Amount    float64    `json:"amount"`
	IsDefault bool       `json:"isDefault"`           // записи нет, взята цена по умолчанию
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // nil для цены по умолчанию
}

// PriceListResponse вся таблица цен
type PriceListResponse struct {
	Prices []PriceResponse `json:"prices"`
}

// SetPriceRequest запрос на изменение цены
type SetPriceRequest struct {
	Tier     string  `json:"tier"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// FromDomainPrice конвертирует доменную запись в ответ
func FromDomainPrice(e *domain.PriceEntry) PriceResponse {
	updatedAt := e.UpdatedAt
	return PriceResponse{
		Tier:      string(e.Tier),
		Category:  string(e.Category),
		Amount:    e.Amount,
		UpdatedAt: &updatedAt,
	}
}

// FromDomainPriceList конвертирует список записей
func FromDomainPriceList(entries []*domain.PriceEntry) *PriceListResponse {
	resp := &PriceListResponse{Prices: make([]PriceResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Prices = append(resp.Prices, FromDomainPrice(e))
	}
	return resp
}
