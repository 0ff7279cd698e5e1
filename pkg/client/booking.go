package client

import (
	"context"
	"fmt"
	"hotelbooking/pkg/model"
	"net/url"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// Create posts a booking request. A non-empty idempotencyKey is sent so
// that retries replay the first response.
func (c *BookingClient) Create(ctx context.Context, req model.BookingRequest, idempotencyKey string) (*Response, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{IdempotencyKeyHeader: idempotencyKey}
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/bookings", req, headers)
}

func (c *BookingClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) GetByReference(ctx context.Context, reference string) (*Response, error) {
	path := "/api/v1/bookings/reference/" + url.PathEscape(reference)
	return c.httpClient.GET(ctx, path)
}
