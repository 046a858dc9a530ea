package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/logisoltech/hitek-store/internal/domain"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicate
		}
	}
	u.ID = "u-new"
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	r.users[u.ID] = &u
	return &u, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == identifier || u.Username == identifier {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(context.Context) ([]domain.User, error) { return nil, nil }

func (r *stubUserRepo) UpdateProfile(context.Context, string, userrepo.ProfileUpdate) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) UpdateShipping(context.Context, string, domain.ShippingInfo) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) Delete(context.Context, string) error { return nil }

func (r *stubUserRepo) AdjustTotals(context.Context, string, userrepo.TotalsDelta) error {
	return nil
}

type stubSessionRepo struct {
	sessions map[string]domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: map[string]domain.Session{}}
}

func (r *stubSessionRepo) Create(_ context.Context, s domain.Session) error {
	if _, ok := r.sessions[s.Token]; ok {
		return domain.ErrDuplicate
	}
	r.sessions[s.Token] = s
	return nil
}

func (r *stubSessionRepo) Get(_ context.Context, token string) (*domain.Session, error) {
	if s, ok := r.sessions[token]; ok {
		return &s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubSessionRepo) Delete(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

func TestRegisterIssuesSession(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := New(users, sessions)

	u, sess, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ali@Example.com ",
		Password: "Password1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ali@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if sess.Token == "" || sess.Scope != domain.ScopeStore {
		t.Fatalf("unexpected session %+v", sess)
	}
	if _, ok := sessions.sessions[sess.Token]; !ok {
		t.Fatal("session not persisted")
	}
}

func TestRegisterPasswordRules(t *testing.T) {
	svc := New(newStubUserRepo(), newStubSessionRepo())

	cases := []string{
		"short1A",    // under the minimum length
		"password1",  // no uppercase
		"PASSWORD1",  // no lowercase
		"Passwordxy", // no digit
	}
	for _, password := range cases {
		_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: password})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("password %q: expected ErrValidation, got %v", password, err)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID:           "u1",
		Email:        "ali@example.com",
		PasswordHash: hashOf(t, "Password1"),
		Role:         domain.RoleCustomer,
	})
	svc := New(users, newStubSessionRepo())

	if _, _, err := svc.Login(context.Background(), "ali@example.com", "Wrong1pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestCMSLoginRequiresAdmin(t *testing.T) {
	users := newStubUserRepo(
		&domain.User{ID: "u1", Email: "ali@example.com", Username: "ali", PasswordHash: hashOf(t, "Password1"), Role: domain.RoleCustomer},
		&domain.User{ID: "a1", Email: "admin@hitek.pk", Username: "admin", PasswordHash: hashOf(t, "Password1"), Role: domain.RoleAdmin},
	)
	svc := New(users, newStubSessionRepo())

	if _, _, err := svc.CMSLogin(context.Background(), "ali", "Password1"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}

	u, sess, err := svc.CMSLogin(context.Background(), "admin", "Password1")
	if err != nil {
		t.Fatalf("CMSLogin: %v", err)
	}
	if u.ID != "a1" || sess.Scope != domain.ScopeCMS {
		t.Fatalf("unexpected login result %+v %+v", u, sess)
	}
}

func TestLookupByTokenScopes(t *testing.T) {
	admin := &domain.User{ID: "a1", Email: "admin@hitek.pk", Role: domain.RoleAdmin}
	customer := &domain.User{ID: "u1", Email: "ali@example.com", Role: domain.RoleCustomer}
	users := newStubUserRepo(admin, customer)
	sessions := newStubSessionRepo()
	svc := New(users, sessions)

	storeSess, err := svc.sessions.Issue(context.Background(), customer.ID, domain.ScopeStore, time.Hour)
	if err != nil {
		t.Fatalf("issue store session: %v", err)
	}
	cmsSess, err := svc.sessions.Issue(context.Background(), admin.ID, domain.ScopeCMS, time.Hour)
	if err != nil {
		t.Fatalf("issue cms session: %v", err)
	}

	// Store tokens work on store routes only.
	if _, err := svc.LookupByToken(context.Background(), domain.ScopeStore, storeSess.Token); err != nil {
		t.Fatalf("store token on store scope: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), domain.ScopeCMS, storeSess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected store token rejected on cms scope, got %v", err)
	}

	// CMS tokens also work on store routes.
	if _, err := svc.LookupByToken(context.Background(), domain.ScopeStore, cmsSess.Token); err != nil {
		t.Fatalf("cms token on store scope: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), domain.ScopeCMS, cmsSess.Token); err != nil {
		t.Fatalf("cms token on cms scope: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), domain.ScopeStore, "bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLookupByTokenEvictsExpired(t *testing.T) {
	customer := &domain.User{ID: "u1", Email: "ali@example.com", Role: domain.RoleCustomer}
	sessions := newStubSessionRepo()
	svc := New(newStubUserRepo(customer), sessions)

	sess, err := svc.sessions.Issue(context.Background(), customer.ID, domain.ScopeStore, -time.Minute)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	if _, err := svc.LookupByToken(context.Background(), domain.ScopeStore, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired session, got %v", err)
	}
	if _, ok := sessions.sessions[sess.Token]; ok {
		t.Fatal("expired session should have been evicted")
	}
}
