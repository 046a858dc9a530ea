package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logisoltech/hitek-store/internal/domain"
	authsvc "github.com/logisoltech/hitek-store/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type cmsLoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *handlers) register(c *gin.Context) {
	var req authsvc.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, sess, err := h.deps.AuthSvc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrValidation):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicate):
			respondError(c, http.StatusConflict, "an account with this email already exists")
		default:
			h.respondInternal(c, "register", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     toAuthUserPayload(u),
		"session":  toSessionPayload(sess),
		"userData": u,
	})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	u, sess, err := h.deps.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.respondInternal(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toAuthUserPayload(u),
		"session":  toSessionPayload(sess),
		"userData": u,
	})
}

func (h *handlers) cmsLogin(c *gin.Context) {
	var req cmsLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "identifier and password are required")
		return
	}

	u, sess, err := h.deps.AuthSvc.CMSLogin(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidCredentials), errors.Is(err, authsvc.ErrNotAdmin):
			respondError(c, http.StatusUnauthorized, "invalid credentials")
		default:
			h.respondInternal(c, "cms login", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    u,
		"session": toSessionPayload(sess),
	})
}
