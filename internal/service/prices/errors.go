package prices

import "errors"

var (
	// ErrInvalidInput возвращается при неизвестном формате или направлении
	ErrInvalidInput = errors.New("prices: invalid input data")

	// ErrInvalidAmount возвращается при отрицательной цене
	ErrInvalidAmount = errors.New("prices: amount must not be negative")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("prices: internal error")
)
