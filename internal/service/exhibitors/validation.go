package exhibitors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/marche-portal/internal/domain"
)

func validateInterval(intervalMinutes int) error {
	if intervalMinutes < 0 || intervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: intervalMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxIntervalMinutes)
	}
	return nil
}

func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(name) > domain.MaxTitleLength {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidInput, field, domain.MaxTitleLength)
	}
	return nil
}

func validateService(durationMinutes int, price int64) error {
	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
