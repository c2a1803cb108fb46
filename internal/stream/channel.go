package stream

import (
	"encoding/json"
	"errors"
)

// ErrBufferFull is returned when a listener's send buffer is full.
var ErrBufferFull = errors.New("send buffer full")

// ChannelListener backs a Listener with a buffered channel, the shape the
// websocket write pump consumes from.
type ChannelListener struct {
	ch chan []byte
}

// NewChannelListener creates a listener with the given buffer size.
func NewChannelListener(buffer int) *ChannelListener {
	return &ChannelListener{ch: make(chan []byte, buffer)}
}

// Send queues data without blocking. A full buffer drops the event.
func (c *ChannelListener) Send(data []byte) error {
	select {
	case c.ch <- data:
		return nil
	default:
		return ErrBufferFull
	}
}

// C exposes the receive side for the write pump.
func (c *ChannelListener) C() <-chan []byte {
	return c.ch
}

func marshalEvent(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
