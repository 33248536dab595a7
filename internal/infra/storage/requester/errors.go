package requester

import "errors"

var (
	// ErrRequesterNotFound возвращается, когда пользователь не найден
	ErrRequesterNotFound = errors.New("requester.repository: requester not found")

	// ErrUnsupportedDriver возвращается для неизвестного драйвера БД
	ErrUnsupportedDriver = errors.New("requester.repository: unsupported driver")

	// ErrQuery возвращается при ошибке запроса gorm
	ErrQuery = errors.New("requester.repository: query failed")
)
