package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateFormat   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrUnknownLeague       = errors.New("unknown league")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrMissingPlayerStats  = errors.New("missing player stats")
	ErrGameNotFinal        = errors.New("game not final")
)

// DateLayout is the wire format for all date parameters.
const DateLayout = "2006-01-02"

// ParseDate validates and parses a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, date)
	}
	return t, nil
}
