package domain

import "time"

// FallbackPrice цена, если для (tier, category) нет записи
const FallbackPrice = 800.0

// PriceEntry цена занятия для пары (tier, category)
type PriceEntry struct {
	Tier      Tier
	Category  Category
	Amount    float64
	UpdatedAt time.Time
}

// basePrices базовые цены по формату, одинаковые для всех направлений
var basePrices = map[Tier]float64{
	TierSolo:     800,
	TierDuet:     1200,
	TierEnsemble: 1500,
}

// DefaultPriceTable таблица цен по умолчанию для всех допустимых пар
func DefaultPriceTable() []PriceEntry {
	entries := make([]PriceEntry, 0, len(Tiers)*len(Categories))
	for _, tier := range Tiers {
		for _, category := range Categories {
			entries = append(entries, PriceEntry{
				Tier:     tier,
				Category: category,
				Amount:   basePrices[tier],
			})
		}
	}
	return entries
}
