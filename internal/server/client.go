package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/standardbeagle/lmi/internal/types"
)

// Client talks to a running MeterServer
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the server at addr ("host:port" or a full
// http URL).
func NewClient(addr string) *Client {
	base := addr
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(base, "/"),
	}
}

// IsServerRunning checks if the server is accessible
func (c *Client) IsServerRunning() bool {
	_, err := c.Ping()
	return err == nil
}

// Ping sends a health check to the server
func (c *Client) Ping() (*PingResponse, error) {
	var resp PingResponse
	if err := c.do(http.MethodGet, "/ping", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to ping server: %w", err)
	}
	return &resp, nil
}

// GetStatus retrieves the corpus status
func (c *Client) GetStatus() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.do(http.MethodGet, "/status", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &resp, nil
}

// Search runs a meter search on the server
func (c *Client) Search(query string, cutoff float64, maxResults int) (*SearchResponse, error) {
	var resp SearchResponse
	err := c.do(http.MethodPost, "/search", SearchRequest{Query: query, ScoreCutoff: cutoff, MaxResults: maxResults}, &resp)
	if resp.Error != "" {
		return nil, fmt.Errorf("search error: %s", resp.Error)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return &resp, nil
}

// Analyze returns the word options of text
func (c *Client) Analyze(text string) ([]types.WordSyllable, error) {
	var resp AnalyzeResponse
	err := c.do(http.MethodPost, "/analyze", AnalyzeRequest{Text: text}, &resp)
	if resp.Error != "" {
		return nil, fmt.Errorf("analyze error: %s", resp.Error)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to analyze: %w", err)
	}
	return resp.Words, nil
}

// Shutdown requests the server to shut down
func (c *Client) Shutdown(force bool) error {
	var resp ShutdownResponse
	if err := c.do(http.MethodPost, "/shutdown", ShutdownRequest{Force: force}, &resp); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("shutdown failed: %s", resp.Message)
	}
	return nil
}

// WaitForReady polls status until the corpus index is built or timeout passes
func (c *Client) WaitForReady(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		status, err := c.GetStatus()
		if err == nil {
			if status.Error != "" {
				return fmt.Errorf("corpus build failed: %s", status.Error)
			}
			if status.Ready {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for corpus %s", c.baseURL)
		case <-ticker.C:
		}
	}
}

// do sends body as JSON and decodes the reply into out. A non-200 reply is
// still decoded when it is JSON, so callers can surface its error field.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}
