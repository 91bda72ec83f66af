package entity

import "time"

// Category agrupa productos (chocolates, gomitas, caramelos...).
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}
