package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "collections-backend/internal/adapter/http"
	"collections-backend/internal/adapter/messaging/kafka"
	mw "collections-backend/internal/adapter/middleware"
	"collections-backend/internal/adapter/repository/mysql"
	"collections-backend/internal/config"
	"collections-backend/internal/domain/disposition"
	"collections-backend/internal/domain/events"
	"collections-backend/internal/infrastructure/cache"
	"collections-backend/internal/infrastructure/db"
	"collections-backend/internal/infrastructure/logger"
	"collections-backend/internal/usecase/allocation"
	ucConstraint "collections-backend/internal/usecase/constraint"
	ucDisposition "collections-backend/internal/usecase/disposition"
	"collections-backend/internal/usecase/distribution"
)

func main() {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), zl)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	var pub events.Publisher = events.Noop{}
	if cfg.EventsEnabled() {
		producer := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic}, zl)
		defer producer.Close()
		pub = producer
		zl.Info("events enabled", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	mode := disposition.Lenient
	if cfg.StrictDispositionFields {
		mode = disposition.Strict
	}

	// repositories and usecases
	tx := mysql.NewGormUoW(gdb)
	customers := mysql.NewCustomerRepository(gdb)
	allocUC := allocation.NewUsecase(tx, pub, zl)
	dispUC := ucDisposition.NewUsecase(tx, customers, mysql.NewDispositionRepository(gdb), pub, zl, mode)
	consUC := ucConstraint.NewUsecase(customers, mysql.NewConstraintRepository(gdb))
	distUC := distribution.NewUsecase(tx, pub, zl)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Recover(), mw.RequestLogger(zl))

	httpadp.Register(e, httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Allocations:  httpadp.NewAllocationHandler(allocUC),
		Dispositions: httpadp.NewDispositionHandler(dispUC),
		Constraints:  httpadp.NewConstraintHandler(consUC),
		Campaigns:    httpadp.NewCampaignHandler(distUC),
	}, mw.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), zl))

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.Bool("strict_fields", cfg.StrictDispositionFields))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
