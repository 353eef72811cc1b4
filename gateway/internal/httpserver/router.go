package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	UserURL    string
	ProductURL string
	OrderURL   string
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"service": "api-gateway",
			"endpoints": map[string]string{
				"users":    "/api/users",
				"products": "/api/products",
				"orders":   "/api/orders",
			},
		})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	userProxy, err := newProxy("user", d.UserURL)
	if err != nil {
		return err
	}

	productProxy, err := newProxy("product", d.ProductURL)
	if err != nil {
		return err
	}

	orderProxy, err := newProxy("order", d.OrderURL)
	if err != nil {
		return err
	}

	e.Any("/api/users", userProxy)
	e.Any("/api/users/*", userProxy)
	e.Any("/api/products", productProxy)
	e.Any("/api/products/*", productProxy)
	e.Any("/api/orders", orderProxy)
	e.Any("/api/orders/*", orderProxy)

	return nil
}
