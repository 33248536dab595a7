package requesters

import "errors"

var (
	// ErrRequesterNotFound возвращается, когда пользователь не найден
	ErrRequesterNotFound = errors.New("requesters: requester not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("requesters: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("requesters: internal error")
)
