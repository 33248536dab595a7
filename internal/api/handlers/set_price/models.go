package set_price

import "github.com/m04kA/SMC-MusicBookingService/internal/service/prices/models"

// SetPriceRequest HTTP request model; tier и category берутся из пути
type SetPriceRequest struct {
	Amount *float64 `json:"amount"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetPriceRequest) ToServiceRequest(tier, category string) *models.SetPriceRequest {
	return &models.SetPriceRequest{
		Tier:     tier,
		Category: category,
		Amount:   *r.Amount,
	}
}
