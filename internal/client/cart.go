package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/guttosm/engraving-service/internal/domain/model"
)

// CartClient talks to the external commerce cart service. Checkout hands
// the bundle's line items to this client; the cart service owns the cart
// from there.
type CartClient interface {
	CreateCart(ctx context.Context) (*model.Cart, error)
	FetchCart(ctx context.Context, cartID string) (*model.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []model.LineItem) (*model.Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*model.Cart, error)
}

// HTTPCartClient implements CartClient against the cart service API.
type HTTPCartClient struct {
	baseClient
}

// NewHTTPCartClient creates a cart client.
func NewHTTPCartClient(baseURL, apiKey string) *HTTPCartClient {
	return &HTTPCartClient{baseClient: newBaseClient("cart", baseURL, apiKey)}
}

type cartResponse struct {
	Cart model.Cart `json:"cart"`
}

type addLinesRequest struct {
	Lines []model.LineItem `json:"lines"`
}

type removeLinesRequest struct {
	LineIDs []string `json:"line_ids"`
}

// CreateCart implements CartClient.
func (c *HTTPCartClient) CreateCart(ctx context.Context) (*model.Cart, error) {
	var resp cartResponse
	if err := c.postJSON(ctx, "/v1/carts", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// FetchCart implements CartClient.
func (c *HTTPCartClient) FetchCart(ctx context.Context, cartID string) (*model.Cart, error) {
	var resp cartResponse
	if err := c.getJSON(ctx, "/v1/carts/"+url.PathEscape(cartID), &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// AddLines implements CartClient.
func (c *HTTPCartClient) AddLines(ctx context.Context, cartID string, lines []model.LineItem) (*model.Cart, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart: no lines to add", ErrServiceUnavailable)
	}
	var resp cartResponse
	path := "/v1/carts/" + url.PathEscape(cartID) + "/lines"
	if err := c.postJSON(ctx, path, addLinesRequest{Lines: lines}, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// RemoveLines implements CartClient.
func (c *HTTPCartClient) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*model.Cart, error) {
	var resp cartResponse
	path := "/v1/carts/" + url.PathEscape(cartID) + "/lines/remove"
	if err := c.postJSON(ctx, path, removeLinesRequest{LineIDs: lineIDs}, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}
