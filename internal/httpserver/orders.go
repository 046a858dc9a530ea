package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logisoltech/hitek-store/internal/domain"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) createOrder(c *gin.Context) {
	var req ordersvc.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u := currentUser(c)
	if u.Role != domain.RoleAdmin && req.UserID != u.ID {
		respondError(c, http.StatusForbidden, "orders can only be placed for your own account")
		return
	}

	ord, err := h.deps.OrderSvc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrValidation), errors.Is(err, ordersvc.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.respondInternal(c, "create order", err)
		}
		return
	}

	items := ord.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	c.JSON(http.StatusCreated, gin.H{"order": ord, "items": items})
}

func (h *handlers) listOrders(c *gin.Context) {
	u := currentUser(c)
	userID := c.Query("userId")

	if u.Role != domain.RoleAdmin {
		if userID == "" {
			userID = u.ID
		} else if userID != u.ID {
			respondError(c, http.StatusForbidden, "access denied")
			return
		}
	}

	var (
		orders []domain.Order
		err    error
	)
	if userID == "" {
		orders, err = h.deps.OrderSvc.List(c.Request.Context())
	} else {
		orders, err = h.deps.OrderSvc.ListByUser(c.Request.Context(), userID)
	}
	if err != nil {
		h.respondInternal(c, "list orders", err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOrder(c *gin.Context) {
	ord, err := h.deps.OrderSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, http.StatusNotFound, "order not found")
			return
		}
		h.respondInternal(c, "get order", err)
		return
	}

	u := currentUser(c)
	if u.Role != domain.RoleAdmin && ord.UserID != u.ID {
		respondError(c, http.StatusForbidden, "access denied")
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": ord})
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	ord, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ordersvc.ErrFinalStatus):
			respondError(c, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			respondError(c, http.StatusNotFound, "order not found")
		default:
			h.respondInternal(c, "update order status", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": ord})
}
