package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/logisoltech/hitek-store/internal/domain"
	sessionrepo "github.com/logisoltech/hitek-store/internal/repository/session"
)

type sessionMeta struct {
	UserID    string
	Scope     string
	ExpiresAt time.Time
}

type sessionManager struct {
	repo sessionrepo.Repository
}

func newSessionManager(repo sessionrepo.Repository) *sessionManager {
	return &sessionManager{repo: repo}
}

// Issue persists a fresh opaque token for the user.
func (m *sessionManager) Issue(ctx context.Context, userID, scope string, ttl time.Duration) (*domain.Session, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 3; i++ {
		sess := domain.Session{
			Token:     uuid.NewString(),
			UserID:    userID,
			Scope:     scope,
			ExpiresAt: expiresAt,
		}
		err := m.repo.Create(ctx, sess)
		if err == nil {
			return &sess, nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("session token collision")
}

// Validate resolves a token, evicting it if expired.
func (m *sessionManager) Validate(ctx context.Context, token string) (sessionMeta, bool) {
	if token == "" {
		return sessionMeta{}, false
	}
	sess, err := m.repo.Get(ctx, token)
	if err != nil {
		return sessionMeta{}, false
	}
	if sess.Expired(time.Now()) {
		_ = m.repo.Delete(ctx, token)
		return sessionMeta{}, false
	}
	return sessionMeta{
		UserID:    sess.UserID,
		Scope:     sess.Scope,
		ExpiresAt: sess.ExpiresAt,
	}, true
}
