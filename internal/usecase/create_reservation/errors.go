package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidDate возвращается для пустой даты, даты в прошлом или за горизонтом бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrInvalidTimeSlot возвращается, когда слот не лежит на сетке расписания
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotTaken возвращается, когда на (дата, слот) уже есть активная бронь
	ErrSlotTaken = errors.New("create_reservation: slot is taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
