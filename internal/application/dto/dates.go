package dto

import (
	"strings"
	"time"
)

// DateLayout formato de fechas de día en la API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDay interpreta YYYY-MM-DD en loc. Vacío devuelve nil sin error.
func ParseDay(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDateTime acepta RFC3339 o YYYY-MM-DD (medianoche en loc).
func ParseDateTime(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return ParseDay(s, loc)
}
