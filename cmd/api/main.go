package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/logisoltech/hitek-store/internal/config"
	"github.com/logisoltech/hitek-store/internal/db"
	"github.com/logisoltech/hitek-store/internal/httpserver"
	orderrepo "github.com/logisoltech/hitek-store/internal/repository/order"
	productrepo "github.com/logisoltech/hitek-store/internal/repository/product"
	sessionrepo "github.com/logisoltech/hitek-store/internal/repository/session"
	userrepo "github.com/logisoltech/hitek-store/internal/repository/user"
	authsvc "github.com/logisoltech/hitek-store/internal/service/auth"
	catalogsvc "github.com/logisoltech/hitek-store/internal/service/catalog"
	ordersvc "github.com/logisoltech/hitek-store/internal/service/order"
	usersvc "github.com/logisoltech/hitek-store/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	sessionRepo := sessionrepo.NewPostgres(dbpool)

	authService := authsvc.New(userRepo, sessionRepo)
	userService := usersvc.New(userRepo)
	orderService := ordersvc.New(orderRepo, userRepo, logger)
	catalogService := catalogsvc.New(productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:    authService,
		UserSvc:    userService,
		OrderSvc:   orderService,
		CatalogSvc: catalogService,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
