package client

import (
	"context"
)

// GenerativeClient proxies to the generative suggestion backend that
// produces quote ideas and engraving-ready image suggestions for the
// editor's inspiration panel.
type GenerativeClient interface {
	GenerateQuotes(ctx context.Context, theme string, count int) ([]string, error)
	GenerateImages(ctx context.Context, prompt string, count int) ([]GeneratedImage, error)
}

// GeneratedImage is one suggestion from the image generation backend.
type GeneratedImage struct {
	// Payload is a data URI ready for insertion into a zone.
	Payload string `json:"payload"`
	Prompt  string `json:"prompt,omitempty"`
}

// HTTPGenerativeClient implements GenerativeClient.
type HTTPGenerativeClient struct {
	baseClient
}

// NewHTTPGenerativeClient creates a generative client.
func NewHTTPGenerativeClient(baseURL, apiKey string) *HTTPGenerativeClient {
	return &HTTPGenerativeClient{baseClient: newBaseClient("generative", baseURL, apiKey)}
}

type generateQuotesRequest struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

type generateQuotesResponse struct {
	Quotes []string `json:"quotes"`
}

type generateImagesRequest struct {
	Prompt string `json:"prompt"`
	Count  int    `json:"count"`
}

type generateImagesResponse struct {
	Images []GeneratedImage `json:"images"`
}

// GenerateQuotes implements GenerativeClient.
func (c *HTTPGenerativeClient) GenerateQuotes(ctx context.Context, theme string, count int) ([]string, error) {
	if count <= 0 {
		count = 3
	}
	var resp generateQuotesResponse
	if err := c.postJSON(ctx, "/v1/quotes", generateQuotesRequest{Theme: theme, Count: count}, &resp); err != nil {
		return nil, err
	}
	return resp.Quotes, nil
}

// GenerateImages implements GenerativeClient.
func (c *HTTPGenerativeClient) GenerateImages(ctx context.Context, prompt string, count int) ([]GeneratedImage, error) {
	if count <= 0 {
		count = 1
	}
	var resp generateImagesResponse
	if err := c.postJSON(ctx, "/v1/images", generateImagesRequest{Prompt: prompt, Count: count}, &resp); err != nil {
		return nil, err
	}
	return resp.Images, nil
}
