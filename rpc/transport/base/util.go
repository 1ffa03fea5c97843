package base

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"

	"github.com/ValentinKolb/rksok/rpc/protocol"
)

// chunkSize is the size of a single read from the connection
const chunkSize = 1024

var (
	// ErrMessageTooLarge is returned if a peer sends more than the allowed number of bytes without a terminator
	ErrMessageTooLarge = errors.New("transport: message exceeds size limit")
	// ErrReceiveTimeout is returned together with the bytes received so far if the terminator did not arrive in time
	ErrReceiveTimeout = errors.New("transport: receive timed out")
)

// ReceiveMessage reads one message from conn.
//
// Reading stops when the buffer ends with the message terminator, when the peer
// closes the connection (EOF) or when timeout has elapsed since the read began.
// On timeout the bytes received so far are returned together with ErrReceiveTimeout.
// If more than maxBytes arrive the buffer is discarded and ErrMessageTooLarge is returned.
func ReceiveMessage(conn net.Conn, timeout time.Duration, maxBytes int) ([]byte, error) {
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			if buf.Len()+n > maxBytes {
				return nil, ErrMessageTooLarge
			}
			buf.Write(chunk[:n])
			if protocol.IsComplete(buf.Bytes()) {
				return buf.Bytes(), nil
			}
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return buf.Bytes(), ErrReceiveTimeout
		}
		return buf.Bytes(), err
	}
}

// writeMessage writes the complete message to conn within timeout
func writeMessage(conn net.Conn, msg []byte, timeout time.Duration) error {
	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	b := net.Buffers{msg}
	_, err := b.WriteTo(conn)
	return err
}
