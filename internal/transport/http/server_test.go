package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/innoscope"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/kickstart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/smart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/volvox"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/agent"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/tools"
)

func newTestServer(t *testing.T) (*Server, *fakeVolvox) {
	t.Helper()
	fv := newFakeVolvox(t)
	vx := volvox.NewClient(fv.server.URL, time.Second)
	registry := stream.NewRegistry()

	dispatcher, err := tools.NewDispatcher(tools.Deps{
		Volvox:     vx,
		Smart:      smart.NewClient(fv.server.URL, time.Second),
		Innoscope:  innoscope.NewClient(fv.server.URL, time.Second),
		Kickstart:  kickstart.NewClient(fv.server.URL, time.Second),
		Supervisor: agent.NewSupervisor(registry),
		Toolset:    agent.NewToolset(vx, nil, nil, nil),
	})
	assert.NoError(t, err)
	return NewServer(dispatcher, registry), fv
}

type fakeVolvox struct {
	server   *httptest.Server
	lastPath string
	lastFile string
}

func newFakeVolvox(t *testing.T) *fakeVolvox {
	t.Helper()
	fv := &fakeVolvox{}
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/auth/me", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(nethttp.StatusUnauthorized)
			fmt.Fprint(w, `{"detail":"Could not validate credentials"}`)
			return
		}
		fmt.Fprint(w, `{"_id":"u1","email":"u1@example.com"}`)
	})
	mux.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fv.lastPath = r.URL.Path
		if f, fh, err := r.FormFile("file"); err == nil {
			fv.lastFile = fh.Filename
			f.Close()
		}
		fmt.Fprint(w, `{"_id":"doc1","ok":true}`)
	})
	fv.server = httptest.NewServer(mux)
	t.Cleanup(fv.server.Close)
	return fv
}

func postRPC(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, domain.RPCResponse) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	var resp domain.RPCResponse
	if rec.Code == nethttp.StatusOK {
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestStatusEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unified MCP Server", body["service"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, float64(22), body["tools"])
}

func TestToolsList(t *testing.T) {
	s, _ := newTestServer(t)
	rec, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "1", string(resp.ID))

	raw, _ := json.Marshal(resp.Result)
	var result domain.ToolsListResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.Len(t, result.Tools, 22)
	assert.Equal(t, "run_agent_smart_search", result.Tools[0].Name)
}

func TestInitialize(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":7,"method":"initialize"}`)

	assert.Nil(t, resp.Error)
	raw, _ := json.Marshal(resp.Result)
	var result domain.InitializeResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, "1.0", result.ProtocolVersion)
	assert.Equal(t, "Unified MCP Server", result.ServerInfo.Name)
}

func TestUnknownMethod(t *testing.T) {
	s, _ := newTestServer(t)
	rec, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/destroy"}`)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, domain.RPCCodeMethodNotFound, resp.Error.Code)
	assert.Equal(t, "Method not found", resp.Error.Message)
}

func TestToolsCallUnknownToolIsEnvelope(t *testing.T) {
	s, _ := newTestServer(t)
	rec, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nope","arguments":{}}}`)

	// Tool failures are not transport failures.
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Nil(t, resp.Error)

	raw, _ := json.Marshal(resp.Result)
	var result domain.CallResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.True(t, result.IsError)
	assert.JSONEq(t, `{"error":"Unknown tool: nope"}`, result.Content[0].Text)
}

func TestToolsCallInvalidToken(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"volvox_chat_history_list","arguments":{"token":"bad"}}}`)

	assert.Nil(t, resp.Error)
	raw, _ := json.Marshal(resp.Result)
	var result domain.CallResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Could not validate credentials")
}

func TestToolsCallMissingName(t *testing.T) {
	s, _ := newTestServer(t)
	_, resp := postRPC(t, s, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{}}`)

	assert.NotNil(t, resp.Error)
	assert.Equal(t, domain.RPCCodeInvalidRequest, resp.Error.Code)
}

func TestMultipartCallCarriesFile(t *testing.T) {
	s, fv := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	envelope := `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"volvox_research_create","arguments":{"token":"good-token","researchName":"paper"}}}`
	assert.NoError(t, writer.WriteField("jsonrpc", envelope))
	part, err := writer.CreateFormFile("file", "paper.pdf")
	assert.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/mcp", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	var resp domain.RPCResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)

	raw, _ := json.Marshal(resp.Result)
	var result domain.CallResult
	assert.NoError(t, json.Unmarshal(raw, &result))
	assert.False(t, result.IsError)
	assert.Equal(t, "paper.pdf", fv.lastFile)
}

func TestMultipartMissingEnvelope(t *testing.T) {
	s, _ := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	assert.NoError(t, writer.WriteField("other", "x"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/mcp", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing jsonrpc field")
}

func dialWS(url string) (*websocket.Conn, *nethttp.Response, error) {
	return websocket.DefaultDialer.Dial(url, nil)
}

func TestWebSocketRequiresThreadID(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Echo())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := dialWS(wsURL)
	assert.NoError(t, err)
	defer conn.Close()

	// The server closes with a policy violation before any event arrives.
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "thread_id is required")
}

func TestWebSocketReceivesConnectedAck(t *testing.T) {
	s, _ := newTestServer(t)
	srv := httptest.NewServer(s.Echo())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?thread_id=th1"
	conn, _, err := dialWS(wsURL)
	assert.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	assert.NoError(t, err)

	var ev domain.StreamEvent
	assert.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, domain.EventTypeConnected, ev.Type)
	assert.Equal(t, "th1", ev.ThreadID)
}
