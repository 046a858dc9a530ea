package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/logisoltech/hitek-store/internal/domain"
)

func (h *handlers) listProducts(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := h.deps.CatalogSvc.List(c.Request.Context(), category)
		if err != nil {
			h.respondInternal(c, "list "+category+"s", err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func (h *handlers) getProduct(category string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := h.deps.CatalogSvc.Get(c.Request.Context(), category, c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, http.StatusNotFound, category+" not found")
				return
			}
			h.respondInternal(c, "get "+category, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
