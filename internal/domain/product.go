package domain

import "time"

// Product categories served by the catalog endpoints.
const (
	CategoryPrinter = "printer"
	CategoryLaptop  = "laptop"
)

type Product struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Currency    string    `json:"currency"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}
