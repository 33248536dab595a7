package list_reservations

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает фильтр из query параметров
// status допускает как повтор параметра, так и список через запятую
func ToServiceRequest(query url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{}

	if v := query.Get("requesterId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.RequesterID = &id
	}

	for _, raw := range query["status"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				req.Statuses = append(req.Statuses, s)
			}
		}
	}

	if v := query.Get("date"); v != "" {
		req.Date = &v
	}

	return req, nil
}
