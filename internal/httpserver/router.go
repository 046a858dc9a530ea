package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/logisoltech/hitek-store/internal/domain"
	authsvc "github.com/logisoltech/hitek-store/internal/service/auth"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
	usersvc "github.com/logisoltech/hitek-store/internal/service/user"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, *domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error)
	CMSLogin(ctx context.Context, identifier, password string) (*domain.User, *domain.Session, error)
	LookupByToken(ctx context.Context, scope, token string) (*domain.User, error)
}

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, id string, in usersvc.ProfileInput) (*domain.User, error)
	UpdateShipping(ctx context.Context, id string, in usersvc.ShippingInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type CatalogService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Get(ctx context.Context, category, id string) (*domain.Product, error)
}

// Deps bundles the services the router wires into handlers.
type Deps struct {
	AuthSvc    AuthService
	UserSvc    UserService
	OrderSvc   OrderService
	CatalogSvc CatalogService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if deps.AuthSvc == nil || deps.UserSvc == nil || deps.OrderSvc == nil || deps.CatalogSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(metricsMiddleware())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", metricsHandler())

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.POST("/cms/login", h.cmsLogin)

		api.GET("/printers", h.listProducts(domain.CategoryPrinter))
		api.GET("/printers/:id", h.getProduct(domain.CategoryPrinter))
		api.GET("/laptops", h.listProducts(domain.CategoryLaptop))
		api.GET("/laptops/:id", h.getProduct(domain.CategoryLaptop))

		authed := api.Group("", authRequired(deps.AuthSvc, domain.ScopeStore))
		{
			authed.GET("/users", requireAdmin(), h.listUsers)
			authed.GET("/users/:id", selfOrAdmin(), h.getUser)
			authed.PUT("/users/:id", selfOrAdmin(), h.updateUser)
			authed.DELETE("/users/:id", selfOrAdmin(), h.deleteUser)
			authed.PUT("/users/:id/shipping", selfOrAdmin(), h.updateShipping)

			authed.POST("/orders", h.createOrder)
			authed.GET("/orders", h.listOrders)
			authed.GET("/orders/:id", h.getOrder)
			authed.PATCH("/orders/:id", requireAdmin(), h.updateOrderStatus)
		}
	}

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
