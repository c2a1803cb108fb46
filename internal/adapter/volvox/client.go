// Package volvox is the client for the Volvox backend: identity
// (signup/login/token resolution) and the document domain (research
// records, RAG chat, chat history, summarization).
package volvox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/remote"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
)

// Client talks to the Volvox API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Volvox client. The HTTP client is reused across
// calls for connection pooling.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Signup creates a user account and returns a token grant.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) (*domain.TokenGrant, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	})
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/signup", "application/json", bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}
	var grant domain.TokenGrant
	if err := json.Unmarshal(data, &grant); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	return &grant, nil
}

// Login exchanges credentials for a token grant.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.TokenGrant, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login", "application/json", bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}
	var grant domain.TokenGrant
	if err := json.Unmarshal(data, &grant); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &grant, nil
}

// ResolveToken resolves a bearer token to the current principal. The token
// format is opaque to this layer; any failure is an authentication error.
func (c *Client) ResolveToken(ctx context.Context, token string) (*domain.Principal, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	data, err := c.do(ctx, http.MethodGet, c.baseURL+"/auth/me", "", nil, token)
	if err != nil {
		return nil, err
	}
	var principal domain.Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		return nil, fmt.Errorf("failed to decode principal: %w", err)
	}
	return &principal, nil
}

// ResearchListOptions are the optional filters of ResearchList.
type ResearchListOptions struct {
	Limit     int
	Offset    int
	Search    string
	StartDate string
	EndDate   string
}

// ResearchList lists the user's research documents.
func (c *Client) ResearchList(ctx context.Context, userID string, opts ResearchListOptions) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	limit := opts.Limit
	if limit == 0 {
		limit = 20
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(opts.Offset))
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.StartDate != "" {
		params.Set("start", opts.StartDate)
	}
	if opts.EndDate != "" {
		params.Set("end", opts.EndDate)
	}
	return c.do(ctx, http.MethodGet, c.baseURL+"/research/?"+params.Encode(), "", nil, "")
}

// ResearchCreate uploads a new research document as multipart/form-data.
func (c *Client) ResearchCreate(ctx context.Context, userID, researchName string, file *domain.FileUpload) (json.RawMessage, error) {
	return c.researchUpload(ctx, http.MethodPost, c.baseURL+"/research/", userID, researchName, file)
}

// ResearchUpdate renames a research document and/or replaces its file.
func (c *Client) ResearchUpdate(ctx context.Context, userID, researchID, researchName string, file *domain.FileUpload) (json.RawMessage, error) {
	return c.researchUpload(ctx, http.MethodPut, c.baseURL+"/research/"+researchID, userID, researchName, file)
}

// ResearchDelete deletes a research document.
func (c *Client) ResearchDelete(ctx context.Context, userID, researchID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	return c.do(ctx, http.MethodDelete, c.baseURL+"/research/"+researchID+"?"+params.Encode(), "", nil, "")
}

// ChatAsk asks the RAG assistant a question about the user's documents.
func (c *Client) ChatAsk(ctx context.Context, userID, question, documentID, chatID string, webSearch bool) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("question", question)
	if documentID != "" {
		params.Set("document_id", documentID)
	}
	if chatID != "" {
		params.Set("chat_id", chatID)
	}
	if webSearch {
		params.Set("web_search", "true")
	}
	// The backend expects the question as query parameters with an empty
	// JSON body.
	return c.do(ctx, http.MethodPost, c.baseURL+"/chat/ask?"+params.Encode(), "application/json", strings.NewReader("{}"), "")
}

// SummarizeResearch generates a summary of multiple research documents.
func (c *Client) SummarizeResearch(ctx context.Context, documentIDs []string) (json.RawMessage, error) {
	body, _ := json.Marshal(map[string][]string{"documents": documentIDs})
	return c.do(ctx, http.MethodPost, c.baseURL+"/chat/summarize-research", "application/json", bytes.NewReader(body), "")
}

// SummarizeContent generates a summary of a large block of text.
func (c *Client) SummarizeContent(ctx context.Context, content string) (json.RawMessage, error) {
	body, _ := json.Marshal(map[string]string{"content": content})
	return c.do(ctx, http.MethodPost, c.baseURL+"/chat/summarize-content", "application/json", bytes.NewReader(body), "")
}

// SummarizeVideo summarizes a video transcript. The backend returns plain
// text, normalized here into a JSON object.
func (c *Client) SummarizeVideo(ctx context.Context, videoURL string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("video_url", videoURL)
	data, err := c.do(ctx, http.MethodPost, c.baseURL+"/chat/summarize-video?"+params.Encode(), "", nil, "")
	if err != nil {
		return nil, err
	}
	summary, _ := json.Marshal(map[string]string{"summary": strings.TrimSpace(string(data))})
	return summary, nil
}

// ChatHistoryList lists all chat conversations for the user.
func (c *Client) ChatHistoryList(ctx context.Context, userID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	return c.do(ctx, http.MethodGet, c.baseURL+"/chat/chatHistory?"+params.Encode(), "", nil, "")
}

// ChatHistoryGet returns the full history of one conversation.
func (c *Client) ChatHistoryGet(ctx context.Context, userID, chatID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	return c.do(ctx, http.MethodGet, c.baseURL+"/chat/chatHistory/"+chatID+"?"+params.Encode(), "", nil, "")
}

// ChatHistoryDelete deletes one conversation's history.
func (c *Client) ChatHistoryDelete(ctx context.Context, userID, chatID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	return c.do(ctx, http.MethodDelete, c.baseURL+"/chat/deleteChat/"+chatID+"?"+params.Encode(), "", nil, "")
}

func (c *Client) researchUpload(ctx context.Context, method, endpoint, userID, researchName string, file *domain.FileUpload) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("user_id", userID); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if researchName != "" {
		if err := writer.WriteField("researchName", researchName); err != nil {
			return nil, fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", file.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, fmt.Errorf("failed to write file part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.do(ctx, method, endpoint, writer.FormDataContentType(), &buf, "")
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remote.NewStatusError(resp.StatusCode, data)
	}
	return data, nil
}
