package base

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/google/uuid"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector IServerConnector
	handler   transport.ServerHandleFunc
	config    common.ServerConfig
	conns     sync.WaitGroup
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport that handles every connection in its own goroutine
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(ctx context.Context, config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	t.config = config

	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), listener.Addr())

	// Close the listener on shutdown, this unblocks Accept
	stop := context.AfterFunc(ctx, func() {
		_ = listener.Close()
	})
	defer stop()

	// Connections finish their request even if the server is shutting down
	connCtx := context.WithoutCancel(ctx)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		t.conns.Add(1)
		go t.handleConnection(connCtx, conn)
	}

	Logger.Infof("Stopped accepting connections, waiting for open connections")
	t.conns.Wait()
	Logger.Infof("%s server on %s stopped", t.connector.GetName(), config.Endpoint)
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection receives one request, lets the handler process it,
// writes the response and closes the connection.
func (t *serverTransport) handleConnection(ctx context.Context, conn net.Conn) {
	defer t.conns.Done()
	defer conn.Close()

	connID := uuid.NewString()
	start := time.Now()
	Logger.Debugf("[%s] accepted connection from %s", connID, conn.RemoteAddr())

	req, err := ReceiveMessage(conn, t.config.ReceiveTimeout, t.config.MaxMessageSize)
	switch {
	case errors.Is(err, ErrMessageTooLarge):
		Logger.Warningf("[%s] request larger than %d bytes, discarded", connID, t.config.MaxMessageSize)
	case errors.Is(err, ErrReceiveTimeout):
		Logger.Warningf("[%s] no complete request after %s (%d bytes received)", connID, t.config.ReceiveTimeout, len(req))
	case err != nil:
		Logger.Warningf("[%s] error receiving request: %v", connID, err)
	}

	resp := t.handler(ctx, connID, req)

	if err := writeMessage(conn, resp, t.config.ReceiveTimeout); err != nil {
		Logger.Errorf("[%s] failed to write response: %v", connID, err)
		return
	}
	Logger.Debugf("[%s] connection handled in %s", connID, time.Since(start))
}
