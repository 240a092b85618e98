package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds each remote store request.
const DefaultRemoteTimeout = 5 * time.Second

// Remote is a client for a token-authenticated key-value HTTP API. Values
// live under GET/PUT {base}/v1/kv/{key}.
type Remote struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewRemote creates a remote store client.
func NewRemote(baseURL, token string, timeout time.Duration) *Remote {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}

	return &Remote{
		baseURL: trimmed,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *Remote) keyURL(key string) string {
	return fmt.Sprintf("%s/v1/kv/%s", s.baseURL, url.PathEscape(key))
}

// Get retrieves the value stored under key. A 404 maps to ErrNotFound.
func (s *Remote) Get(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.keyURL(key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create read request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote store returned status %d for key %q", resp.StatusCode, key)
	}

	value, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return value, nil
}

// Put stores value under key.
func (s *Remote) Put(ctx context.Context, key string, value []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.keyURL(key), bytes.NewReader(value))
	if err != nil {
		return fmt.Errorf("failed to create write request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("remote store returned status %d for key %q", resp.StatusCode, key)
	}
	return nil
}
