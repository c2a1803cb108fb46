// Package innoscope is the client for the Innoscope feasibility and
// roadmap generation backend. Both generators stream their output as
// newline-delimited event lines; the client collects the stream into a
// single newline-joined string.
package innoscope

import (
	"bufio"
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

// Client talks to the Innoscope API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Innoscope client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FeasibilityFromSummary generates a feasibility assessment from a project
// summary, collecting the event stream into one string.
func (c *Client) FeasibilityFromSummary(ctx context.Context, summary string) (string, error) {
	return c.collectStream(ctx, c.baseURL+"/feasibility/assess-from-summary-stream", summary)
}

// RoadmapFromSummary generates a roadmap from a project summary,
// collecting the event stream into one string.
func (c *Client) RoadmapFromSummary(ctx context.Context, summary string) (string, error) {
	return c.collectStream(ctx, c.baseURL+"/roadmap/generate-from-summary-stream", summary)
}

func (c *Client) collectStream(ctx context.Context, endpoint, summary string) (string, error) {
	body, _ := json.Marshal(map[string]string{"summary": summary})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", remote.NewStatusError(resp.StatusCode, data)
	}

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stream: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
