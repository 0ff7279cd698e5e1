package client

import (
	"context"
	"fmt"
	"hotelbooking/pkg/model"
	"net/url"
)

type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(baseUrl string) *RoomClient {
	return &RoomClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *RoomClient) Available(ctx context.Context, query model.AvailabilityQuery) (*Response, error) {
	q := url.Values{}
	q.Set("check_in", query.CheckIn)
	q.Set("check_out", query.CheckOut)
	q.Set("guests", fmt.Sprintf("%d", query.NumberOfGuests))
	if query.HotelID > 0 {
		q.Set("hotel_id", fmt.Sprintf("%d", query.HotelID))
	}
	return c.httpClient.GET(ctx, "/api/v1/rooms/available?"+q.Encode())
}
