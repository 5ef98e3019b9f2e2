package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fitdesk-hq/fitdesk-backend/api/routes"
	internalAuth "github.com/fitdesk-hq/fitdesk-backend/internal/auth"
	"github.com/fitdesk-hq/fitdesk-backend/internal/documents"
	"github.com/fitdesk-hq/fitdesk-backend/internal/finance"
	"github.com/fitdesk-hq/fitdesk-backend/internal/invites"
	"github.com/fitdesk-hq/fitdesk-backend/internal/leads"
	"github.com/fitdesk-hq/fitdesk-backend/internal/materials"
	"github.com/fitdesk-hq/fitdesk-backend/internal/procurement"
	"github.com/fitdesk-hq/fitdesk-backend/internal/quotations"
	"github.com/fitdesk-hq/fitdesk-backend/internal/studios"
	"github.com/fitdesk-hq/fitdesk-backend/internal/users"
	"github.com/fitdesk-hq/fitdesk-backend/internal/vendors"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/auth/session"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/config"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/db"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/logger"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/migrate"
	"github.com/fitdesk-hq/fitdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gdb := dbClient.DB()

	userRepo := users.NewRepository(gdb)
	studioRepo := studios.NewRepository(gdb)
	inviteRepo := invites.NewRepository(gdb)
	leadRepo := leads.NewRepository(gdb)
	quotationRepo := quotations.NewRepository(gdb)
	vendorRepo := vendors.NewRepository(gdb)
	materialRepo := materials.NewRepository(gdb)
	procurementRepo := procurement.NewRepository(gdb)
	documentRepo := documents.NewRepository(gdb)
	financeRepo := finance.NewRepository(gdb)

	authService := internalAuth.NewService(userRepo, studioRepo, sessionManager, cfg.JWT, cfg.Password, logg)
	studioService := studios.NewService(studioRepo, logg)
	inviteService := invites.NewService(inviteRepo, studioRepo, redisClient, dbClient, logg, cfg.Invites.TTL)
	quotationService := quotations.NewService(quotationRepo, dbClient, logg, cfg.Quotations.NumberPrefix)
	leadService := leads.NewService(leadRepo, quotationService, logg)
	vendorService := vendors.NewService(vendorRepo, logg)
	materialService := materials.NewService(materialRepo, logg)
	procurementService := procurement.NewService(procurementRepo, materialRepo, dbClient, logg)
	documentService := documents.NewService(documentRepo, logg)
	financeService := finance.NewService(financeRepo, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.New(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			Auth:        authService,
			Studios:     studioService,
			Invites:     inviteService,
			Leads:       leadService,
			Quotations:  quotationService,
			Vendors:     vendorService,
			Materials:   materialService,
			Procurement: procurementService,
			Documents:   documentService,
			Finance:     financeService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
