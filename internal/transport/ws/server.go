// Package ws provides the streaming endpoint: one WebSocket per thread id
// attached to the correlation registry.
package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
)

const (
	writeTimeout   = 10 * time.Second
	readTimeout    = 60 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Server handles WebSocket upgrades for stream listeners.
type Server struct {
	registry *stream.Registry
	upgrader websocket.Upgrader
}

// NewServer creates the streaming server over the given registry.
func NewServer(registry *stream.Registry) *Server {
	return &Server{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and attaches it as the thread's
// listener. A missing thread_id closes the socket with a policy violation.
func (s *Server) HandleWebSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket: %v", err)
		return err
	}

	threadID := c.QueryParam("thread_id")
	if threadID == "" {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "thread_id is required")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		conn.Close()
		return nil
	}

	listener := stream.NewChannelListener(sendBuffer)
	s.registry.Attach(threadID, listener)
	conn.SetReadLimit(maxMessageSize)

	go s.writePump(conn, listener)
	go s.readPump(conn, threadID, listener)

	return nil
}

// readPump drains the connection until it closes. Inbound frames carry no
// meaning on this endpoint; the pump exists to observe disconnects and
// answer pings.
func (s *Server) readPump(conn *websocket.Conn, threadID string, listener *stream.ChannelListener) {
	defer func() {
		s.registry.Detach(threadID, listener)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error on thread %s: %v", threadID, err)
			}
			return
		}
	}
}

// writePump forwards queued events to the socket and keeps it alive with
// pings.
func (s *Server) writePump(conn *websocket.Conn, listener *stream.ChannelListener) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-listener.C():
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
