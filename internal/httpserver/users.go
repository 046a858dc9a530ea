package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logisoltech/hitek-store/internal/domain"
	usersvc "github.com/logisoltech/hitek-store/internal/service/user"
)

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.deps.UserSvc.List(c.Request.Context())
	if err != nil {
		h.respondInternal(c, "list users", err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *handlers) getUser(c *gin.Context) {
	u, err := h.deps.UserSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.respondInternal(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) updateUser(c *gin.Context) {
	var req usersvc.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.deps.UserSvc.UpdateProfile(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrNoFields):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			respondError(c, http.StatusNotFound, "user not found")
		case errors.Is(err, domain.ErrDuplicate):
			respondError(c, http.StatusConflict, "email or username already in use")
		default:
			h.respondInternal(c, "update user", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) updateShipping(c *gin.Context) {
	var req usersvc.ShippingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.deps.UserSvc.UpdateShipping(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.respondInternal(c, "update shipping", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) deleteUser(c *gin.Context) {
	if err := h.deps.UserSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.respondInternal(c, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}
