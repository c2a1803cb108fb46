// Package kickstart is the client for the Kickstart funding-proposal
// backend, which renders a feasibility report into a PDF.
package kickstart

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

// Client talks to the Kickstart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Kickstart client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateProposal renders a funding proposal PDF from a feasibility
// report and returns the raw PDF bytes.
func (c *Client) GenerateProposal(ctx context.Context, reportText string) ([]byte, error) {
	body, _ := json.Marshal(map[string]string{"report_text": reportText})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/proposals/generate-from-text", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

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
