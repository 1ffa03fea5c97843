package tcp

import (
	"context"
	"fmt"
	"net"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/base"
)

// serverConnector listens on the host:port of config.Endpoint
type serverConnector struct{}

func (c *serverConnector) GetName() string {
	return "tcp"
}

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	// connections are closed after one answer, keep-alive would only add probes
	lc := net.ListenConfig{KeepAlive: -1}
	listener, err := lc.Listen(context.Background(), "tcp", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", config.Endpoint, err)
	}
	return listener, nil
}

// NewTCPServerTransport returns the transport the phonebook server listens with.
// Each accepted connection is answered exactly once and then closed.
func NewTCPServerTransport() transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{})
}
