package client

import (
	"context"
	"fmt"
	"net/url"
)

type HotelClient struct {
	httpClient *HttpClient
}

func NewHotelClient(baseUrl string) *HotelClient {
	return &HotelClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *HotelClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/hotels?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *HotelClient) GetByID(ctx context.Context, id int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/hotels/id/%d", id))
}

func (c *HotelClient) SearchByName(ctx context.Context, name string) (*Response, error) {
	q := url.Values{}
	q.Set("name", name)
	return c.httpClient.GET(ctx, "/api/v1/hotels/search?"+q.Encode())
}
