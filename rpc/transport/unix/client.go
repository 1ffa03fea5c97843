package unix

import (
	"net"
	"time"

	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/base"
)

// clientConnector dials the socket file given as endpoint
type clientConnector struct{}

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(socketPath string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", socketPath, timeout)
}

// NewUnixClientTransport returns a one-shot phonebook client for a server on the same host
func NewUnixClientTransport(maxMessageSize int) transport.IRPCClientTransport {
	return base.NewBaseClientTransport(&clientConnector{}, maxMessageSize)
}
