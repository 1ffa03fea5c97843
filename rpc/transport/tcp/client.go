package tcp

import (
	"net"
	"time"

	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/base"
)

// clientConnector dials a phonebook (or approval) server on host:port.
// Every connection carries a single request, so keep-alive probes are disabled.
type clientConnector struct{}

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	dialer := net.Dialer{Timeout: timeout, KeepAlive: -1}
	return dialer.Dial("tcp", endpoint)
}

// NewTCPClientTransport returns a one-shot client: connect, send the request,
// read until the empty line (at most maxMessageSize bytes) and hang up.
// It is used by the phonebook client and for the approval round trip.
func NewTCPClientTransport(maxMessageSize int) transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, maxMessageSize)
}
