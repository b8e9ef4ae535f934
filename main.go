package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"goodjob/companies"
	"goodjob/config"
	"goodjob/db"
	"goodjob/logger"
	"goodjob/middleware"
	"goodjob/mq"
	"goodjob/quota"
	"goodjob/ratelim"
	"goodjob/rdx"
	"goodjob/recommendations"
	"goodjob/reports"
	"goodjob/routes"
	"goodjob/workings"
)

// app holds the long-lived connections closed on shutdown.
type app struct {
	cfg   *config.Config
	mongo *db.Database
	redis *redis.Client
}

func setupRouter(a *app) *httprouter.Router {
	emitter := mq.NewEmitter(a.redis, mq.WorkingsChannel)
	workingStore := workings.NewMongoStore(a.mongo.Workings)

	workingSvc := workings.NewService(
		workingStore,
		companies.NewResolver(
			companies.NewMongoFinder(a.mongo.Companies),
			companies.NewRedisCache(a.redis, a.cfg.CompanyCacheTTL),
		),
		quota.NewManager(quota.NewMongoCounter(a.mongo.Users), a.cfg.QuotaLimit),
		recommendations.NewService(recommendations.NewMongoStore(a.mongo.Recommendations)),
		emitter,
		workings.Options{
			Policy: workings.WagePolicy{
				WeeksPerYear:    workings.DefaultWagePolicy.WeeksPerYear,
				PublicHolidays:  float64(a.cfg.WagePublicHolidays),
				AnnualLeaveDays: float64(a.cfg.WageAnnualLeaveDays),
			},
			Location: a.cfg.Location(),
		},
	)
	reportSvc := reports.NewService(reports.NewMongoStore(a.mongo.Reports), workingStore, emitter)

	router := httprouter.New()
	routes.RoutesWrapper(router,
		routes.Handlers{
			Workings: workings.NewHandler(workingSvc),
			Reports:  reports.NewHandler(reportSvc),
		},
		middleware.NewAuth([]byte(a.cfg.JWTSecret)),
		ratelim.NewRateLimiter(a.cfg.RateLimitPerMinute),
		[]routes.Dependency{
			{Name: "mongo", Ping: func(ctx context.Context) error { return a.mongo.Client.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }},
		},
	)
	return router
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	mongo, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	if err := mongo.EnsureIndexes(ctx); err != nil {
		return err
	}
	conn, err := rdx.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}

	a := &app{cfg: cfg, mongo: mongo, redis: conn}
	router := setupRouter(a)

	// apply middleware: request id → logging → CORS → security headers → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(middleware.SecurityHeaders(router))

	handler := middleware.RequestID(middleware.Logging(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect", zap.Error(err))
		}
		if err := conn.Close(); err != nil {
			logger.Warn("redis close", zap.Error(err))
		}
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped cleanly")
	return nil
}

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
