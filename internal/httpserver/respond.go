package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logisoltech/hitek-store/internal/domain"
)

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// respondInternal logs the underlying failure and returns a stable message.
// Database diagnostics never reach the client.
func (h *handlers) respondInternal(c *gin.Context, op string, err error) {
	h.logger.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, op, err)
	respondError(c, http.StatusInternalServerError, "request could not be completed")
}

// sessionPayload is the wire shape of an issued session.
type sessionPayload struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func toSessionPayload(s *domain.Session) sessionPayload {
	return sessionPayload{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// authUserPayload is the compact identity block returned next to userData.
type authUserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toAuthUserPayload(u *domain.User) authUserPayload {
	return authUserPayload{ID: u.ID, Email: u.Email, Role: u.Role}
}
