package client

import (
	"context"
	"fmt"
)

// PricingClient quotes the engraving fee for an uploaded image. The quote
// is requested once at insertion and cached on the design object; later
// pricing never re-calls the service.
type PricingClient interface {
	PriceImage(ctx context.Context, payload, kind string) (float64, error)
}

// HTTPPricingClient implements PricingClient against the image pricing
// service.
type HTTPPricingClient struct {
	baseClient
}

// NewHTTPPricingClient creates a pricing client.
func NewHTTPPricingClient(baseURL, apiKey string) *HTTPPricingClient {
	return &HTTPPricingClient{baseClient: newBaseClient("image-pricing", baseURL, apiKey)}
}

type priceImageRequest struct {
	Payload string `json:"payload"`
	Kind    string `json:"kind"`
}

type priceImageResponse struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// PriceImage implements PricingClient.
func (c *HTTPPricingClient) PriceImage(ctx context.Context, payload, kind string) (float64, error) {
	var resp priceImageResponse
	if err := c.postJSON(ctx, "/v1/price-image", priceImageRequest{Payload: payload, Kind: kind}, &resp); err != nil {
		return 0, err
	}
	if resp.Price < 0 {
		return 0, fmt.Errorf("%w: image-pricing returned negative price %f", ErrServiceUnavailable, resp.Price)
	}
	return resp.Price, nil
}
