// Package smart is the client for the Smart Research knowledge-base
// answering backend.
package smart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/remote"
)

// Client talks to the Smart Research API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Smart Research client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MessageQuery answers a stateless question from the knowledge base.
// Mode selects the search depth ("simple" or "deep").
func (c *Client) MessageQuery(ctx context.Context, message, mode string) (json.RawMessage, error) {
	if mode == "" {
		mode = "simple"
	}
	body, _ := json.Marshal(map[string]string{
		"message": message,
		"mode":    mode,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/messageQuery", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remote.NewStatusError(resp.StatusCode, data)
	}
	return data, nil
}
