package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/logisoltech/hitek-store/internal/domain"
	sessionrepo "github.com/logisoltech/hitek-store/internal/repository/session"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotAdmin is returned when a non-admin account attempts a CMS login.
	ErrNotAdmin = errors.New("account has no CMS access")
	// ErrValidation tags rejected input; the message is safe to show the user.
	ErrValidation = errors.New("validation failed")
)

// Service handles storefront and CMS signup/login flows.
type Service struct {
	users       userrepo.Repository
	sessions    *sessionManager
	accessTTL   time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userrepo.Repository, sessions sessionrepo.Repository) *Service {
	return &Service{
		users:       users,
		sessions:    newSessionManager(sessions),
		accessTTL:   48 * time.Hour,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Register creates a storefront account and issues its first session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.Session, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Issue(ctx, u.ID, domain.ScopeStore, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// Login validates storefront credentials and issues a session.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	sess, err := s.sessions.Issue(ctx, u.ID, domain.ScopeStore, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// CMSLogin validates an admin account by email or username and issues a
// CMS-scoped session.
func (s *Service) CMSLogin(ctx context.Context, identifier, password string) (*domain.User, *domain.Session, error) {
	u, err := s.users.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if u.Role != domain.RoleAdmin {
		return nil, nil, ErrNotAdmin
	}
	sess, err := s.sessions.Issue(ctx, u.ID, domain.ScopeCMS, s.accessTTL)
	if err != nil {
		return nil, nil, err
	}
	return u, sess, nil
}

// LookupByToken returns the user bound to a valid token in the given scope.
// CMS tokens are accepted on storefront routes; the reverse is not.
func (s *Service) LookupByToken(ctx context.Context, scope, token string) (*domain.User, error) {
	meta, ok := s.sessions.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	if meta.Scope != scope && !(scope == domain.ScopeStore && meta.Scope == domain.ScopeCMS) {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
