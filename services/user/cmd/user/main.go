package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/OzgurKrks/mikrosevice/pkg/db"
	"github.com/OzgurKrks/mikrosevice/pkg/events"
	"github.com/OzgurKrks/mikrosevice/pkg/logging"
	loggingmw "github.com/OzgurKrks/mikrosevice/pkg/middleware/logging"
	metricsmw "github.com/OzgurKrks/mikrosevice/pkg/middleware/metrics"

	usercfg "github.com/OzgurKrks/mikrosevice/services/user/internal/config"
	"github.com/OzgurKrks/mikrosevice/services/user/internal/httpserver"
	"github.com/OzgurKrks/mikrosevice/services/user/internal/models"
	"github.com/OzgurKrks/mikrosevice/services/user/internal/repo"
	"github.com/OzgurKrks/mikrosevice/services/user/internal/service"
)

func main() {
	if err := godotenv.Load("services/user/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := usercfg.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "user")
	slog.SetDefault(logger)

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	userRepo := &repo.GormRepo{DB: db}
	svc := &service.UserService{Repo: userRepo, JWTSecret: cfg.JWTSecret, Producer: producer}
	handler := &httpserver.UserHTTP{Svc: svc}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metricsmw.Middleware("user"))
	e.Use(echomw.CORS())

	e.GET("/metrics", metricsmw.Handler())

	httpserver.Register(e, &httpserver.Deps{UserHandler: handler})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("user service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("user service stopped")
}
