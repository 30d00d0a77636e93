package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	configs := cmd.LoadConfig()

	log, err := logger.New(configs.LogLevel)
	if err != nil {
		gommonlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	gormDB, err := openDB(configs)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		log.Fatal("failed to migrate schema", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(configs, gormDB)
	e := buildServer(&root, log)

	go func() {
		addr := "0.0.0.0:" + configs.HTTPPort
		log.Info("starting http server", zap.String("addr", addr))
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(startErr))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}

// openDB connects through database/sql with the pq driver so repository code
// can rely on pq error codes and array support.
func openDB(configs cmd.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		return nil, err
	}

	return gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
}

func buildServer(root *cmd.CompositionRoot, log *zap.Logger) *echo.Echo {
	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAcceptOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrderByTrackingNumberQueryHandler(),
		root.CreateListOrdersQueryHandler(),
		root.CreateListAvailableOrdersQueryHandler(),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	server.RegisterRoutes(e)
	return e
}
