package base

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint within timeout
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector      IClientConnector
	maxMessageSize int
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector.
// Responses larger than maxMessageSize bytes are rejected.
func NewBaseClientTransport(connector IClientConnector, maxMessageSize int) transport.IRPCClientTransport {
	return &clientTransport{
		connector:      connector,
		maxMessageSize: maxMessageSize,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

// Send opens a connection, writes the request and reads the response.
// Connection errors are wrapped with %w so callers can inspect the cause (e.g. syscall.ECONNREFUSED).
// If the response does not complete in time, the partial response is returned with ErrReceiveTimeout.
func (t *clientTransport) Send(endpoint string, req []byte, timeout time.Duration) ([]byte, error) {
	conn, err := t.connector.Connect(endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s via %s: %w", endpoint, t.connector.GetName(), err)
	}
	defer conn.Close()

	if err := writeMessage(conn, req, timeout); err != nil {
		return nil, fmt.Errorf("failed to write request to %s: %w", endpoint, err)
	}

	resp, err := ReceiveMessage(conn, timeout, t.maxMessageSize)
	if errors.Is(err, ErrReceiveTimeout) {
		Logger.Debugf("response from %s incomplete after %s", endpoint, timeout)
		return resp, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}
	return resp, nil
}
