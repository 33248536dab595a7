package domain

// Tier формат занятия, определяет ценовую категорию
type Tier string

const (
	TierSolo     Tier = "solo"
	TierDuet     Tier = "duet"
	TierEnsemble Tier = "ensemble"
)

// Tiers все форматы в порядке показа
var Tiers = []Tier{TierSolo, TierDuet, TierEnsemble}

// Category музыкальное направление
type Category string

const (
	CategoryPercussion Category = "percussion"
	CategoryStrings    Category = "strings"
	CategoryBrass      Category = "brass"
	CategoryPiano      Category = "piano"
	CategoryVocal      Category = "vocal"
	CategoryMix        Category = "mix"
)

// Categories все направления в порядке показа
var Categories = []Category{
	CategoryPercussion,
	CategoryStrings,
	CategoryBrass,
	CategoryPiano,
	CategoryVocal,
	CategoryMix,
}

// Instrument уточнение инструмента (только для ударных)
type Instrument string

const (
	InstrumentDrums      Instrument = "drums"
	InstrumentPercc      Instrument = "percc"
	InstrumentTimpani    Instrument = "timpani"
	InstrumentElectronic Instrument = "electronic"
	InstrumentAll        Instrument = "all"
)

// PercussionInstruments допустимые инструменты для направления percussion
var PercussionInstruments = []Instrument{
	InstrumentDrums,
	InstrumentPercc,
	InstrumentTimpani,
	InstrumentElectronic,
	InstrumentAll,
}

func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownTier
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// ParseInstrument проверяет инструмент с учётом направления
func ParseInstrument(category Category, s string) (Instrument, error) {
	if category != CategoryPercussion {
		return "", ErrInstrumentNotAllowed
	}
	for _, i := range PercussionInstruments {
		if string(i) == s {
			return i, nil
		}
	}
	return "", ErrUnknownInstrument
}
