package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type UserClient struct {
	http *resty.Client
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{http: newClient(baseURL)}
}

func (c *UserClient) GetUser(ctx context.Context, id uint) (*User, error) {
	var user User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("/api/users/%d", id))
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("user service returned %d", resp.StatusCode())
	}
	return &user, nil
}
