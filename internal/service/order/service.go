package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/logisoltech/hitek-store/internal/domain"
	orderrepo "github.com/logisoltech/hitek-store/internal/repository/order"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
)

var (
	// ErrInvalidStatus is returned for statuses outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrFinalStatus rejects transitions out of completed or cancelled.
	ErrFinalStatus = errors.New("order is in a final status")
	// ErrValidation tags rejected input; the message is safe to show the user.
	ErrValidation = errors.New("validation failed")
)

// Service creates and updates orders and keeps each user's denormalized
// order counters in step with order lifecycle events.
type Service struct {
	repo   orderRepo
	users  totalsRepo
	logger *log.Logger
}

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.OrderStatus, *domain.Order, error)
}

type totalsRepo interface {
	AdjustTotals(ctx context.Context, id string, delta userrepo.TotalsDelta) error
}

func New(repo orderrepo.Repository, users totalsRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, users: users, logger: logger}
}

// Totals carries the checkout money breakdown in display units.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type ItemInput struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateInput struct {
	UserID          string      `json:"userId"`
	Status          string      `json:"status"`
	Totals          Totals      `json:"totals"`
	ShippingAddress string      `json:"shippingAddress"`
	BillingAddress  string      `json:"billingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	OrderNotes      string      `json:"orderNotes"`
	Items           []ItemInput `json:"items"`
}

// Create inserts the order with its items, then bumps the user's counters:
// totalorders always, pending when the initial status is pending-like,
// completed when it is completed. A failed counter update is logged and does
// not fail the checkout; totals may drift until the next status change.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("%w: userId required", ErrValidation)
	}
	status := domain.OrderStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	items := make([]orderrepo.CreateOrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%w: item name required", ErrValidation)
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, orderrepo.CreateOrderItem{
			ProductID:  strings.TrimSpace(item.ProductID),
			Name:       item.Name,
			PriceCents: toCents(item.Price),
			Quantity:   qty,
		})
	}

	ord, err := s.repo.Create(ctx, orderrepo.CreateOrderInput{
		UserID:          in.UserID,
		Status:          status,
		SubtotalCents:   toCents(in.Totals.Subtotal),
		TaxCents:        toCents(in.Totals.Tax),
		ShippingCents:   toCents(in.Totals.Shipping),
		TotalCents:      toCents(in.Totals.Total),
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		PaymentMethod:   in.PaymentMethod,
		OrderNotes:      in.OrderNotes,
		Items:           items,
	})
	if err != nil {
		return nil, err
	}

	delta := userrepo.TotalsDelta{TotalOrders: 1}
	if status.PendingLike() {
		delta.Pending = 1
	}
	if status.CompletedLike() {
		delta.Completed = 1
	}
	if err := s.users.AdjustTotals(ctx, ord.UserID, delta); err != nil {
		s.logger.Printf("order %s: totals update failed for user %s: %v", ord.ID, ord.UserID, err)
	}

	return ord, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to a new status and reconciles the user's
// pending/completed counters with one signed delta each. totalorders never
// changes after creation. Orders already completed or cancelled are final.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	status = domain.OrderStatus(strings.TrimSpace(string(status)))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() && current.Status != status {
		return nil, ErrFinalStatus
	}

	old, ord, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	delta := userrepo.TotalsDelta{
		Pending:   bucketDelta(old.PendingLike(), status.PendingLike()),
		Completed: bucketDelta(old.CompletedLike(), status.CompletedLike()),
	}
	if delta.Pending != 0 || delta.Completed != 0 {
		if err := s.users.AdjustTotals(ctx, ord.UserID, delta); err != nil {
			s.logger.Printf("order %s: totals update failed for user %s: %v", ord.ID, ord.UserID, err)
		}
	}

	return ord, nil
}

// bucketDelta maps a status-bucket transition to a signed counter adjustment.
func bucketDelta(was, is bool) int {
	switch {
	case was && !is:
		return -1
	case !was && is:
		return 1
	default:
		return 0
	}
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
