package unix

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/base"
)

// ErrNotASocket is returned if the endpoint path exists but is not a socket
var ErrNotASocket = errors.New("unix: endpoint exists and is not a socket")

// serverConnector listens on the socket file config.Endpoint
type serverConnector struct{}

func (c *serverConnector) GetName() string {
	return "unix"
}

func (c *serverConnector) Listen(config common.ServerConfig) (net.Listener, error) {
	if err := removeStaleSocket(config.Endpoint); err != nil {
		return nil, err
	}
	listener, err := net.Listen("unix", config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket %s: %w", config.Endpoint, err)
	}
	return listener, nil
}

// removeStaleSocket deletes a socket left behind by a previous run.
// Any other kind of file at the path is left alone.
func removeStaleSocket(path string) error {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	case info.Mode()&fs.ModeSocket == 0:
		return fmt.Errorf("%w: %s", ErrNotASocket, path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	return nil
}

// NewUnixServerTransport returns the phonebook server transport for a local socket file
func NewUnixServerTransport() transport.IRPCServerTransport {
	return base.NewBaseServerTransport(&serverConnector{})
}
