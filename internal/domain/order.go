package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PendingLike reports whether s counts against the user's pending bucket.
// Pending and in-progress orders share one counter.
func (s OrderStatus) PendingLike() bool {
	return s == StatusPending || s == StatusInProgress
}

// CompletedLike reports whether s counts against the user's completed bucket.
func (s OrderStatus) CompletedLike() bool {
	return s == StatusCompleted
}

// Terminal reports whether no further status transitions are accepted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Status          OrderStatus `json:"status"`
	SubtotalCents   int64       `json:"subtotalCents"`
	TaxCents        int64       `json:"taxCents"`
	ShippingCents   int64       `json:"shippingCents"`
	TotalCents      int64       `json:"totalCents"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	BillingAddress  string      `json:"billingAddress,omitempty"`
	PaymentMethod   string      `json:"paymentMethod,omitempty"`
	OrderNotes      string      `json:"orderNotes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem is a product snapshot owned by one order, created atomically with it.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}
