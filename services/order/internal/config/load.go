package config

import "github.com/OzgurKrks/mikrosevice/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmpty(cfg.UserServiceURL, "USER_SERVICE_URL")
	config.MustNonEmpty(cfg.ProductServiceURL, "PRODUCT_SERVICE_URL")

	return ServiceConfig{Config: cfg}
}
