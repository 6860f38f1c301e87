package list_events

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/marche-portal/internal/service/events/models"
)

// ToServiceRequest формирует фильтры из query параметров
// startFrom/startTo принимаются в RFC 3339
func ToServiceRequest(query url.Values) (*models.ListEventsRequest, error) {
	req := &models.ListEventsRequest{}

	if prefecture := query.Get("prefecture"); prefecture != "" {
		req.Prefecture = &prefecture
	}
	if eventType := query.Get("eventType"); eventType != "" {
		req.EventType = &eventType
	}

	if raw := query.Get("startFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startFrom: %w", err)
		}
		req.StartFrom = &from
	}
	if raw := query.Get("startTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startTo: %w", err)
		}
		req.StartTo = &to
	}

	return req, nil
}
