package expire_reservations

import "time"

// Request модель запроса на прогон истечения
type Request struct {
	Now time.Time // Момент прогона; пустой означает текущее время
}

// Response результат прогона
type Response struct {
	Now            time.Time
	Cutoff         time.Time // Истекли брони, созданные раньше этого момента
	ExpiredCount   int
	ReservationIDs []int64
}
