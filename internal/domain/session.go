package domain

import "time"

// Session scopes. Storefront and CMS logins issue tokens in separate scopes so
// a storefront session can never act on CMS routes.
const (
	ScopeStore = "store"
	ScopeCMS   = "cms"
)

// Session is an opaque bearer token persisted server-side.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"-"`
	Scope     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
