// Package http provides the front-door HTTP server: the JSON-RPC tool
// endpoint, the streaming upgrade endpoint and the status route.
package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/tools"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/transport/ws"
)

const (
	serverName    = "Unified MCP Server"
	serverVersion = "1.0.0"
	protocolVer   = "1.0"
)

// Server is the front-door HTTP server.
type Server struct {
	echo       *echo.Echo
	dispatcher *tools.Dispatcher
	registry   *stream.Registry
	streams    *ws.Server
}

// NewServer assembles the echo instance with routes and middleware.
func NewServer(dispatcher *tools.Dispatcher, registry *stream.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:       e,
		dispatcher: dispatcher,
		registry:   registry,
		streams:    ws.NewServer(registry),
	}

	e.GET("/", s.handleStatus)
	e.POST("/mcp", s.handleRPC)
	e.GET("/ws", s.streams.HandleWebSocket)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying instance for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// handleStatus reports liveness and catalog size.
func (s *Server) handleStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service":   serverName,
		"status":    "running",
		"tools":     len(s.dispatcher.Definitions()),
		"listeners": s.registry.ListenerCount(),
	})
}

// handleRPC is the single JSON-RPC endpoint. Multipart requests carry the
// envelope in a "jsonrpc" form field with an optional "file" part merged
// into the invocation.
func (s *Server) handleRPC(c echo.Context) error {
	var req domain.RPCRequest
	var file *domain.FileUpload

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.Contains(contentType, "multipart/form-data") {
		field := c.FormValue("jsonrpc")
		if field == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing jsonrpc field"})
		}
		if err := json.Unmarshal([]byte(field), &req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid jsonrpc JSON"})
		}
		upload, err := readUpload(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		file = upload
	} else {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
	}

	switch req.Method {
	case domain.MethodToolsList:
		return c.JSON(http.StatusOK, domain.NewRPCResult(req.ID, domain.ToolsListResult{
			Tools: s.dispatcher.Definitions(),
		}))

	case domain.MethodInitialize:
		return c.JSON(http.StatusOK, domain.NewRPCResult(req.ID, domain.InitializeResult{
			ProtocolVersion: protocolVer,
			ServerInfo:      domain.ServerInfo{Name: serverName, Version: serverVersion},
			Capabilities:    map[string]interface{}{"tools": map[string]interface{}{}},
		}))

	case domain.MethodToolsCall:
		if req.Params == nil || req.Params.Name == "" {
			return c.JSON(http.StatusOK, domain.NewRPCError(req.ID, domain.RPCCodeInvalidRequest, "params.name is required"))
		}
		args := domain.Args{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return c.JSON(http.StatusOK, domain.NewRPCError(req.ID, domain.RPCCodeInvalidRequest, "invalid arguments"))
			}
		}
		result := s.dispatcher.Execute(c.Request().Context(), req.Params.Name, args, file)
		return c.JSON(http.StatusOK, domain.NewRPCResult(req.ID, result.Envelope()))
	}

	return c.JSON(http.StatusOK, domain.NewRPCError(req.ID, domain.RPCCodeMethodNotFound, "Method not found"))
}

// readUpload extracts the optional "file" part of a multipart request.
func readUpload(c echo.Context) (*domain.FileUpload, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// Absent file part is fine; tools that need one enforce it.
		return nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &domain.FileUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Content:     content,
	}, nil
}
