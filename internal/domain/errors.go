package domain

import "errors"

var (
	ErrUnknownStatus        = errors.New("domain: unknown reservation status")
	ErrUnknownTier          = errors.New("domain: unknown tier")
	ErrUnknownCategory      = errors.New("domain: unknown category")
	ErrUnknownInstrument    = errors.New("domain: unknown instrument")
	ErrInstrumentNotAllowed = errors.New("domain: instrument is only allowed for percussion")
)
