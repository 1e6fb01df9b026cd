package websocket

import (
	"errors"
	"fmt"

	"github.com/luciancaetano/gatewire"
)

// ErrClosed is returned by every operation on a client that was closed
// locally.
var ErrClosed = errors.New(gatewire.ErrConnectionClosed)

// CloseError is a close frame received from the gateway. Code is 1005 when
// the frame carried no status.
type CloseError struct {
	Code   int
	Reason string
}

func (e *CloseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("gateway closed the connection: code %d", e.Code)
	}
	return fmt.Sprintf("gateway closed the connection: code %d: %s", e.Code, e.Reason)
}

// Reconnectable reports whether a new session may be started after this
// close.
func (e *CloseError) Reconnectable() bool {
	return gatewire.CloseCodeReconnectable(e.Code)
}
