package client

import "context"

type DataClient struct {
	httpClient *HttpClient
}

func NewDataClient(baseUrl string) *DataClient {
	return &DataClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *DataClient) Seed(ctx context.Context) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/data/seed", nil)
}

func (c *DataClient) Clear(ctx context.Context) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/data/clear")
}
