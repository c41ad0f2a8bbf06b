// Package enhance calls an external AI image enhancement service.
package enhance

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"

	"github.com/MeKo-Tech/iconkey/internal/imgio"
)

// DefaultEndpoint is used when the client is constructed without one.
const DefaultEndpoint = "http://localhost:8787/v1/upscale"

// Client posts an encoded image to an upscaling service and decodes the
// returned image. The service is opaque: it answers with an image of
// the same or different dimensions, or fails. Failures surface to the
// caller unretried; falling back to the previous raster is the
// editor's job.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a client for the given endpoint. An empty endpoint
// selects DefaultEndpoint; a nil http client selects
// http.DefaultClient.
func NewClient(endpoint string, client *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{endpoint: endpoint, client: client}
}

// Enhance sends img and returns the service's image. The context bounds
// the whole request; a caller abandoning it simply never receives a
// result.
func (c *Client) Enhance(ctx context.Context, img image.Image) (image.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode request image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enhancement request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("enhancement service returned status %d", resp.StatusCode)
	}

	out, _, err := imgio.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode enhanced image: %w", err)
	}
	return out, nil
}
