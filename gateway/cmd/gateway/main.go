package main

import (
	"context"
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

	"github.com/OzgurKrks/mikrosevice/gateway/internal/config"
	"github.com/OzgurKrks/mikrosevice/gateway/internal/httpserver"
	"github.com/OzgurKrks/mikrosevice/pkg/logging"
	loggingmw "github.com/OzgurKrks/mikrosevice/pkg/middleware/logging"
	metricsmw "github.com/OzgurKrks/mikrosevice/pkg/middleware/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "gateway")
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metricsmw.Middleware("gateway"))
	e.Use(echomw.CORS())

	e.GET("/metrics", metricsmw.Handler())

	if err := httpserver.Register(e, &httpserver.Deps{
		UserURL:    cfg.UserURL,
		ProductURL: cfg.ProductURL,
		OrderURL:   cfg.OrderURL,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		log.Printf("gateway listening on %s", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
