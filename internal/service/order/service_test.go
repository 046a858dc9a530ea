package order

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/logisoltech/hitek-store/internal/domain"
	orderrepo "github.com/logisoltech/hitek-store/internal/repository/order"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
)

type stubOrderRepo struct {
	created      *domain.Order
	createErr    error
	lastCreate   orderrepo.CreateOrderInput
	getResult    *domain.Order
	getErr       error
	updated      *domain.Order
	updateOld    domain.OrderStatus
	updateErr    error
	lastUpdateID string
	lastStatus   domain.OrderStatus
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.lastCreate = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Order{ID: "o1", UserID: in.UserID, Status: in.Status}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.getResult, s.getErr
}

func (s *stubOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (domain.OrderStatus, *domain.Order, error) {
	s.lastUpdateID = id
	s.lastStatus = status
	if s.updateErr != nil {
		return "", nil, s.updateErr
	}
	return s.updateOld, s.updated, nil
}

type stubTotals struct {
	err     error
	calls   int
	lastID  string
	lastDel userrepo.TotalsDelta
}

func (s *stubTotals) AdjustTotals(_ context.Context, id string, delta userrepo.TotalsDelta) error {
	s.calls++
	s.lastID = id
	s.lastDel = delta
	return s.err
}

func newTestService(repo orderRepo, totals totalsRepo) *Service {
	return &Service{repo: repo, users: totals, logger: log.New(io.Discard, "", 0)}
}

func TestCreatePendingBumpsTotalAndPending(t *testing.T) {
	repo := &stubOrderRepo{}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	ord, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Status: "pending",
		Items:  []ItemInput{{Name: "LaserJet", Price: 1000, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.ID != "o1" {
		t.Fatalf("unexpected order %+v", ord)
	}
	want := userrepo.TotalsDelta{TotalOrders: 1, Pending: 1}
	if totals.lastDel != want {
		t.Fatalf("expected delta %+v, got %+v", want, totals.lastDel)
	}
	if totals.lastID != "u1" {
		t.Fatalf("expected totals for u1, got %s", totals.lastID)
	}
}

func TestCreateInProgressCountsAsPending(t *testing.T) {
	repo := &stubOrderRepo{}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	if _, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Status: "in_progress",
		Items:  []ItemInput{{Name: "x", Quantity: 1}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := userrepo.TotalsDelta{TotalOrders: 1, Pending: 1}
	if totals.lastDel != want {
		t.Fatalf("expected delta %+v, got %+v", want, totals.lastDel)
	}
}

func TestCreateCompletedBumpsCompleted(t *testing.T) {
	repo := &stubOrderRepo{}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	if _, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Status: "completed",
		Items:  []ItemInput{{Name: "x", Quantity: 1}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := userrepo.TotalsDelta{TotalOrders: 1, Completed: 1}
	if totals.lastDel != want {
		t.Fatalf("expected delta %+v, got %+v", want, totals.lastDel)
	}
}

func TestCreateDefaultsToPendingStatus(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(repo, &stubTotals{})

	if _, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Items:  []ItemInput{{Name: "x", Quantity: 1}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCreate.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", repo.lastCreate.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubTotals{})

	if _, err := svc.Create(context.Background(), CreateInput{Items: []ItemInput{{Name: "x"}}}); err == nil {
		t.Fatal("expected userId validation error")
	}
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "u1"}); err == nil {
		t.Fatal("expected items validation error")
	}
	_, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Status: "shipped",
		Items:  []ItemInput{{Name: "x"}},
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCreateNormalizesItems(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(repo, &stubTotals{})

	if _, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Totals: Totals{Subtotal: 19.99, Total: 19.99},
		Items:  []ItemInput{{ProductID: " p1 ", Name: "Mouse", Price: 19.99, Quantity: 0}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := repo.lastCreate.Items[0]
	if item.Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", item.Quantity)
	}
	if item.PriceCents != 1999 {
		t.Fatalf("expected 1999 cents, got %d", item.PriceCents)
	}
	if item.ProductID != "p1" {
		t.Fatalf("expected trimmed product id, got %q", item.ProductID)
	}
	if repo.lastCreate.SubtotalCents != 1999 {
		t.Fatalf("expected subtotal 1999 cents, got %d", repo.lastCreate.SubtotalCents)
	}
}

func TestCreateSucceedsWhenTotalsUpdateFails(t *testing.T) {
	repo := &stubOrderRepo{}
	totals := &stubTotals{err: errors.New("network down")}
	svc := newTestService(repo, totals)

	ord, err := svc.Create(context.Background(), CreateInput{
		UserID: "u1",
		Items:  []ItemInput{{Name: "x", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("expected order creation to succeed, got %v", err)
	}
	if ord == nil || totals.calls != 1 {
		t.Fatalf("expected one totals attempt, got %d", totals.calls)
	}
}

func TestUpdateStatusPendingToCompleted(t *testing.T) {
	repo := &stubOrderRepo{
		getResult: &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending},
		updateOld: domain.StatusPending,
		updated:   &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusCompleted},
	}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	ord, err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.Status != domain.StatusCompleted {
		t.Fatalf("unexpected order %+v", ord)
	}
	want := userrepo.TotalsDelta{Pending: -1, Completed: 1}
	if totals.lastDel != want {
		t.Fatalf("expected delta %+v, got %+v", want, totals.lastDel)
	}
	if totals.lastDel.TotalOrders != 0 {
		t.Fatal("totalorders must not change on status updates")
	}
}

func TestUpdateStatusPendingToInProgressNoDelta(t *testing.T) {
	repo := &stubOrderRepo{
		getResult: &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending},
		updateOld: domain.StatusPending,
		updated:   &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusInProgress},
	}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	if _, err := svc.UpdateStatus(context.Background(), "o1", domain.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.calls != 0 {
		t.Fatalf("expected no totals call for same-bucket transition, got %d", totals.calls)
	}
}

func TestUpdateStatusCancellingPendingDecrements(t *testing.T) {
	repo := &stubOrderRepo{
		getResult: &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending},
		updateOld: domain.StatusPending,
		updated:   &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusCancelled},
	}
	totals := &stubTotals{}
	svc := newTestService(repo, totals)

	if _, err := svc.UpdateStatus(context.Background(), "o1", domain.StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := userrepo.TotalsDelta{Pending: -1}
	if totals.lastDel != want {
		t.Fatalf("expected delta %+v, got %+v", want, totals.lastDel)
	}
}

func TestUpdateStatusRejectsFinalOrders(t *testing.T) {
	repo := &stubOrderRepo{
		getResult: &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusCompleted},
	}
	svc := newTestService(repo, &stubTotals{})

	_, err := svc.UpdateStatus(context.Background(), "o1", domain.StatusPending)
	if !errors.Is(err, ErrFinalStatus) {
		t.Fatalf("expected ErrFinalStatus, got %v", err)
	}
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	svc := newTestService(&stubOrderRepo{}, &stubTotals{})

	_, err := svc.UpdateStatus(context.Background(), "o1", "delivered")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &stubOrderRepo{getErr: domain.ErrNotFound}
	svc := newTestService(repo, &stubTotals{})

	_, err := svc.UpdateStatus(context.Background(), "missing", domain.StatusCompleted)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
