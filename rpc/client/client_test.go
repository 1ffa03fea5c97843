package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/ValentinKolb/rksok/rpc/transport/tcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transportFunc adapts a function to transport.IRPCClientTransport
type transportFunc func(endpoint string, req []byte, timeout time.Duration) ([]byte, error)

func (f transportFunc) Send(endpoint string, req []byte, timeout time.Duration) ([]byte, error) {
	return f(endpoint, req, timeout)
}

func testConfig(endpoint string) common.ClientConfig {
	return common.ClientConfig{
		Transport:      "tcp",
		Endpoint:       endpoint,
		Timeout:        time.Second,
		MaxMessageSize: common.DefaultMaxMessageSize,
	}
}

func TestNewPhonebookClientValidatesConfig(t *testing.T) {
	_, err := NewPhonebookClient(common.ClientConfig{}, transportFunc(nil))
	assert.Error(t, err)

	_, err = NewPhonebookClient(testConfig("localhost:1"), nil)
	assert.Error(t, err)
}

func TestRequests(t *testing.T) {
	var sent []string
	tr := transportFunc(func(endpoint string, req []byte, _ time.Duration) ([]byte, error) {
		assert.Equal(t, "localhost:3333", endpoint)
		sent = append(sent, string(req))
		return protocol.Encode(protocol.NewOKResponse("")), nil
	})
	c, err := NewPhonebookClient(testConfig("localhost:3333"), tr)
	require.NoError(t, err)

	_, err = c.Get("  Иван   Хмурый ")
	require.NoError(t, err)
	_, err = c.Write("Иван Хмурый", " 89012345678\r\n")
	require.NoError(t, err)
	ex, err := c.Delete("Иван Хмурый")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ОТДОВАЙ Иван Хмурый РКСОК/1.0\r\n\r\n",
		"ЗОПИШИ Иван Хмурый РКСОК/1.0\r\n89012345678\r\n\r\n",
		"УДОЛИ Иван Хмурый РКСОК/1.0\r\n\r\n",
	}, sent)
	assert.Equal(t, "НОРМАЛДЫКС РКСОК/1.0\r\n\r\n", ex.RawResponse)
	assert.Equal(t, protocol.StatusOK, ex.Response.Token())
}

func TestInvalidRequestIsNotSent(t *testing.T) {
	tr := transportFunc(func(string, []byte, time.Duration) ([]byte, error) {
		t.Fatal("request must not be sent")
		return nil, nil
	})
	c, err := NewPhonebookClient(testConfig("localhost:3333"), tr)
	require.NoError(t, err)

	_, err = c.Get("Абвгдежзийклмнопрстуфхцчшщъыьэюя")
	assert.ErrorIs(t, err, protocol.ErrKeyTooLong)
}

func TestUnparsableResponse(t *testing.T) {
	tr := transportFunc(func(string, []byte, time.Duration) ([]byte, error) {
		return []byte("HTTP/1.1 400 Bad Request\r\n\r\n"), nil
	})
	c, err := NewPhonebookClient(testConfig("localhost:3333"), tr)
	require.NoError(t, err)

	ex, err := c.Get("Иван")
	assert.ErrorIs(t, err, ErrUnparsableResponse)
	assert.Equal(t, "HTTP/1.1 400 Bad Request\r\n\r\n", ex.RawResponse)
}

func TestTransportError(t *testing.T) {
	boom := errors.New("boom")
	c, err := NewPhonebookClient(testConfig("localhost:3333"), transportFunc(func(string, []byte, time.Duration) ([]byte, error) {
		return nil, boom
	}))
	require.NoError(t, err)

	_, err = c.Delete("Иван")
	assert.ErrorIs(t, err, boom)
}

// TestOverTCP runs the client against a tcp server that answers every request with НИНАШОЛ
func TestOverTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := l.Addr().String()
	require.NoError(t, l.Close())

	srv := tcp.NewTCPServerTransport()
	srv.RegisterHandler(func(context.Context, string, []byte) []byte {
		return protocol.Encode(protocol.NewNotFoundResponse())
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = srv.Listen(ctx, common.ServerConfig{
			Transport:      "tcp",
			Endpoint:       endpoint,
			ReceiveTimeout: time.Second,
			MaxMessageSize: common.DefaultMaxMessageSize,
		})
	}()

	c, err := NewPhonebookClient(testConfig(endpoint), tcp.NewTCPClientTransport(common.DefaultMaxMessageSize))
	require.NoError(t, err)

	var ex Exchange
	require.Eventually(t, func() bool {
		ex, err = c.Get("Иван")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Телефон человека Иван не найден на сервере РКСОК", Describe(ex.Request, ex.Response))
}
