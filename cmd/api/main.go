package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"orgauth.app/internal/account"
	"orgauth.app/internal/config"
	"orgauth.app/internal/httpapi"
	"orgauth.app/internal/migrate"
	"orgauth.app/internal/obs"
	"orgauth.app/migrations"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()
	obs.SetLogger(logger)
	obs.Init()
	obs.InitBuildInfo(version, commit)

	// Without a DSN the service runs entirely in memory, useful for local
	// development.
	var (
		db    *sql.DB
		store account.Store
	)
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("open db", zap.Error(err))
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		if cfg.MigrationsAuto {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := migrate.NewManager(db, migrations.FS).Up(ctx); err != nil {
				cancel()
				logger.Fatal("apply migrations", zap.Error(err))
			}
			cancel()
		}
		store = account.NewPGStore(db)
	} else {
		logger.Warn("no ORGAUTH_PG_DSN set, using in-memory store")
		store = account.NewInMemory()
	}

	accounts, err := account.NewService(store)
	if err != nil {
		logger.Fatal("init account service", zap.Error(err))
	}

	api := httpapi.New(httpapi.ReadyProbe{DB: db}, version, accounts,
		httpapi.WithTokenTTL(cfg.TokenTTL),
		httpapi.WithRateLimit(cfg.RateBurst, cfg.RatePerSec),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var (
		grpcSrv   *grpc.Server
		healthSvc *health.Server
	)
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Fatal("grpc listen", zap.Error(err))
		}
		grpcSrv = grpc.NewServer()
		healthSvc = health.NewServer()
		healthpb.RegisterHealthServer(grpcSrv, healthSvc)
		go func() {
			logger.Info("grpc health listening", zap.String("addr", cfg.GRPCAddr))
			if err := grpcSrv.Serve(lis); err != nil {
				logger.Error("grpc serve", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Info("starting orgauth-api",
			zap.String("version", version),
			zap.String("addr", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	if healthSvc != nil {
		healthSvc.Shutdown()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if db != nil {
		_ = db.Close()
	}
	logger.Info("stopped")
}
