package user

import (
	"context"

	"github.com/logisoltech/hitek-store/internal/domain"
)

// ProfileUpdate carries the editable profile fields. Empty strings leave the
// stored value untouched.
type ProfileUpdate struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}

// TotalsDelta is a signed adjustment to a user's denormalized order counters.
// Each counter is clamped at zero when applied.
type TotalsDelta struct {
	TotalOrders int
	Pending     int
	Completed   int
}

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*domain.User, error)
	UpdateShipping(ctx context.Context, id string, in domain.ShippingInfo) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	AdjustTotals(ctx context.Context, id string, delta TotalsDelta) error
}
