package config

import (
	"os"

	"github.com/OzgurKrks/mikrosevice/pkg/config"
)

type Config struct {
	ListenAddr string
	UserURL    string
	ProductURL string
	OrderURL   string
}

func Load() *Config {
	cfg := &Config{
		ListenAddr: config.EnvDefault("GATEWAY_ADDR", ":8080"),
		UserURL:    os.Getenv("USER_SERVICE_URL"),
		ProductURL: os.Getenv("PRODUCT_SERVICE_URL"),
		OrderURL:   os.Getenv("ORDER_SERVICE_URL"),
	}

	config.MustNonEmpty(cfg.UserURL, "USER_SERVICE_URL")
	config.MustNonEmpty(cfg.ProductURL, "PRODUCT_SERVICE_URL")
	config.MustNonEmpty(cfg.OrderURL, "ORDER_SERVICE_URL")

	return cfg
}
