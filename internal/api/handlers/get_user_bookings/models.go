package get_user_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/marche-portal/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(userID int64, query url.Values) (*models.GetUserBookingsRequest, error) {
	req := &models.GetUserBookingsRequest{UserID: userID}

	if raw := query.Get("eventId"); raw != "" {
		eventID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid eventId: %w", err)
		}
		req.EventID = &eventID
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid serviceId: %w", err)
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
