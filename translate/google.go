package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleURL is the public endpoint used by Google's web translator widget.
const DefaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

var (
	ErrNoBackend     = errors.New("translation backend not configured")
	ErrEmptyResponse = errors.New("translation backend returned no text")
)

// Google calls the web translate endpoint with source language auto-detection.
type Google struct {
	endpoint string
	client   *http.Client
}

func NewGoogle(endpoint string) *Google {
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}
	return &Google{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *Google) Translate(ctx context.Context, text, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse joins the translated segments of [[["seg","src",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", ErrEmptyResponse
	}
	var segments [][]interface{}
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("translate: decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
