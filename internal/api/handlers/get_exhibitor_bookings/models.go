package get_exhibitor_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
	"github.com/m04kA/marche-portal/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date (YYYY-MM-DD) задает сутки в часовом поясе loc; from/to (RFC 3339) задают произвольный период
func ToServiceRequest(
	exhibitorID int64,
	userID int64,
	dateStr string,
	fromStr string,
	toStr string,
	includeCancelledStr string,
	loc *time.Location,
) (*models.GetExhibitorBookingsRequest, error) {
	req := &models.GetExhibitorBookingsRequest{
		UserID:      userID,
		ExhibitorID: exhibitorID,
	}

	if dateStr != "" {
		date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		next := date.AddDate(0, 0, 1)
		req.StartFrom = &date
		req.StartTo = &next
	}

	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from: %w", err)
		}
		req.StartFrom = &from
	}

	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to: %w", err)
		}
		req.StartTo = &to
	}

	if includeCancelledStr != "" {
		include, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}
