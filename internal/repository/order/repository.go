package order

import (
	"context"

	"github.com/logisoltech/hitek-store/internal/domain"
)

type CreateOrderItem struct {
	ProductID  string
	Name       string
	PriceCents int64
	Quantity   int
}

type CreateOrderInput struct {
	UserID          string
	Status          domain.OrderStatus
	SubtotalCents   int64
	TaxCents        int64
	ShippingCents   int64
	TotalCents      int64
	ShippingAddress string
	BillingAddress  string
	PaymentMethod   string
	OrderNotes      string
	Items           []CreateOrderItem
}

type Repository interface {
	// Create inserts the order and its items in one transaction.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdateStatus replaces the order status under a row lock and reports the
	// status it replaced, so counter deltas are computed from a consistent read.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.OrderStatus, *domain.Order, error)
}
