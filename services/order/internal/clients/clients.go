package clients

import (
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound means the collaborator answered 404 for the id; any other
// failure is a transport or upstream error.
var ErrNotFound = errors.New("not found")

const (
	requestTimeout = 5 * time.Second
	retryWait      = 200 * time.Millisecond
)

// newClient configures the shared outbound policy: hard timeout plus a
// single retry with backoff on transport errors and 5xx responses.
func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(1).
		SetRetryWaitTime(retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
}
