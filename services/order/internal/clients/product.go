package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type Product struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type ProductClient struct {
	http *resty.Client
}

func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{http: newClient(baseURL)}
}

func (c *ProductClient) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&prod).
		Get(fmt.Sprintf("/api/products/%d", id))
	if err != nil {
		return nil, fmt.Errorf("product service: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("product service returned %d", resp.StatusCode())
	}
	return &prod, nil
}
