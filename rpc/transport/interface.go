package transport

import (
	"context"
	"time"

	"github.com/ValentinKolb/rksok/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests.
// It is called by a server transport once per connection with the raw bytes
// received (possibly empty or incomplete) and returns the encoded response.
// connID identifies the connection in logs.
type ServerHandleFunc func(ctx context.Context, connID string, req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers the handler called for every accepted connection
	RegisterHandler(handler ServerHandleFunc)
	// Listen accepts connections until ctx is cancelled. It then stops accepting,
	// waits for the connections in flight and returns nil.
	Listen(ctx context.Context, config common.ServerConfig) error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport.
// Every call opens a new connection, the protocol carries one request per connection.
type IRPCClientTransport interface {
	// Send writes req to the endpoint and reads one framed response.
	// timeout bounds connecting, writing and reading each.
	Send(endpoint string, req []byte, timeout time.Duration) (resp []byte, err error)
}
