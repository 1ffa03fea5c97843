package base

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReceiveMessageComplete(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	msg := "ОТДОВАЙ Иван Хмурый РКСОК/1.0\r\n\r\n"
	go func() {
		// split the write to exercise accumulation
		_, _ = client.Write([]byte(msg[:10]))
		_, _ = client.Write([]byte(msg[10:]))
	}()

	got, err := ReceiveMessage(server, time.Second, 1024)
	require.NoError(t, err)
	require.Equal(t, msg, string(got))
}

func TestReceiveMessageEOF(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("partial"))
		_ = client.Close()
	}()

	got, err := ReceiveMessage(server, time.Second, 1024)
	require.NoError(t, err)
	require.Equal(t, "partial", string(got))
}

// the receive never blocks longer than the timeout if the terminator does not arrive
func TestReceiveMessageTimeoutFloor(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_, _ = client.Write([]byte("ЗОПИШИ Иван РКСОК/1.0\r\n123"))
	}()

	timeout := 200 * time.Millisecond
	start := time.Now()
	got, err := ReceiveMessage(server, timeout, 1024)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrReceiveTimeout)
	require.Equal(t, "ЗОПИШИ Иван РКСОК/1.0\r\n123", string(got))
	require.GreaterOrEqual(t, elapsed, timeout)
	require.Less(t, elapsed, timeout+time.Second)
}

func TestReceiveMessageTooLarge(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		_, _ = client.Write(bytes.Repeat([]byte("a"), 4096))
	}()

	got, err := ReceiveMessage(server, time.Second, 2048)
	require.ErrorIs(t, err, ErrMessageTooLarge)
	require.Empty(t, got)
}

func TestWriteMessage(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	done := make(chan string)
	go func() {
		buf := make([]byte, 64)
		n, _ := client.Read(buf)
		done <- string(buf[:n])
	}()

	require.NoError(t, writeMessage(server, []byte("НИНАШОЛ РКСОК/1.0\r\n\r\n"), time.Second))
	require.True(t, strings.HasPrefix(<-done, "НИНАШОЛ"))
}
