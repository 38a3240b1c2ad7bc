// Package app assembles the whole application: configuration, database,
// storage, lifecycle managers, retention sweeper and HTTP surface.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estoquerapido/internal/bucket"
	"estoquerapido/internal/config"
	"estoquerapido/internal/database"
	"estoquerapido/internal/enrichment"
	"estoquerapido/internal/event"
	"estoquerapido/internal/handler"
	"estoquerapido/internal/mailer"
	"estoquerapido/internal/middleware"
	"estoquerapido/internal/model"
	"estoquerapido/internal/recyclebin"
	"estoquerapido/internal/repository"
	"estoquerapido/internal/router"
	"estoquerapido/internal/service"
	"estoquerapido/internal/sweeper"
	"estoquerapido/internal/websocket"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := bucket.NewFSBucket(cfg.BucketRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	paymentMethodRepo := repository.NewPaymentMethodRepository(pool)
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	if err := authService.BootstrapAdmin(context.Background(),
		cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword, cfg.BootstrapAdminName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin user: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	bus := event.NewBus()
	hub := websocket.NewHub(bus)
	go hub.Run()

	retention := cfg.Retention()
	companyManager := recyclebin.NewManager[*model.Company](model.KindCompany, companyRepo, bus, retention)
	categoryManager := recyclebin.NewManager[*model.Category](model.KindCategory, categoryRepo, bus, retention)
	productManager := recyclebin.NewManager[*model.Product](model.KindProduct, productRepo, bus, retention)
	paymentMethodManager := recyclebin.NewManager[*model.PaymentMethod](model.KindPaymentMethod, paymentMethodRepo, bus, retention)

	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.MailEnabled())
	registry := enrichment.NewCNPJClient(cfg.CNPJAPIURL, cfg.EnrichmentTimeout)
	barcodes := enrichment.NewEANClient(cfg.EANAPIURL, cfg.EANAPIToken, cfg.EnrichmentTimeout)

	companyService := service.NewCompanyService(
		service.NewCatalog[*model.Company](companyManager, companyRepo, bus), registry, mail)
	categoryService := service.NewCategoryService(
		service.NewCatalog[*model.Category](categoryManager, categoryRepo, bus))
	productService := service.NewProductService(
		service.NewCatalog[*model.Product](productManager, productRepo, bus), barcodes, store)
	paymentMethodService := service.NewPaymentMethodService(
		service.NewCatalog[*model.PaymentMethod](paymentMethodManager, paymentMethodRepo, bus))

	companyHandler := handler.NewCompanyHandler(companyService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	paymentMethodHandler := handler.NewPaymentMethodHandler(paymentMethodService)
	recycleBinHandler := handler.NewRecycleBinHandler(
		companyManager, categoryManager, productManager, paymentMethodManager)

	retentionSweeper := sweeper.New(
		[]recyclebin.Purger{companyManager, categoryManager, productManager, paymentMethodManager},
		store, bus, cfg.SweepInterval)
	sweeperCtx, sweeperCancel := context.WithCancel(context.Background())
	go retentionSweeper.Run(sweeperCtx)

	health := func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}

	appRouter := router.New(cfg, authMiddleware, authHandler,
		companyHandler, categoryHandler, productHandler, paymentMethodHandler,
		recycleBinHandler, hub, health)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			sweeperCancel,
			func() {
				db.Close()
			},
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		for _, cleanup := range a.cleanupFuncs {
			cleanup()
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
