package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/ValentinKolb/rksok/rpc/transport/tcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServerConfig(endpoint, validationEndpoint string) common.ServerConfig {
	return common.ServerConfig{
		Transport:          "tcp",
		Endpoint:           endpoint,
		ValidationEndpoint: validationEndpoint,
		ReceiveTimeout:     time.Second,
		ValidationTimeout:  time.Second,
		StorageTimeout:     time.Second,
		MaxMessageSize:     common.DefaultMaxMessageSize,
		LogLevel:           "warn",
		Storage:            store.Config{Type: store.StorageTypeMemory},
	}
}

// startTestServer runs a server until the test ends
func startTestServer(t *testing.T, config common.ServerConfig) {
	s := NewRPCServer(config, tcp.NewTCPServerTransport(), tcp.NewTCPClientTransport(config.MaxMessageSize))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", config.Endpoint)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)
}

func TestServerEndToEnd(t *testing.T) {
	endpoint := refusedAddress(t)
	startTestServer(t, testServerConfig(endpoint, ""))

	client := tcp.NewTCPClientTransport(common.DefaultMaxMessageSize)
	send := func(raw string) string {
		resp, err := client.Send(endpoint, []byte(raw), 2*time.Second)
		require.NoError(t, err)
		return string(resp)
	}

	assert.Equal(t, "НОРМАЛДЫКС РКСОК/1.0\r\n\r\n", send("ЗОПИШИ Иван Хмурый РКСОК/1.0\r\n89012345678\r\n\r\n"))
	assert.Equal(t, "НОРМАЛДЫКС РКСОК/1.0\r\n89012345678\r\n\r\n", send("ОТДОВАЙ Иван Хмурый РКСОК/1.0\r\n\r\n"))
	assert.Equal(t, "НИПОНЯЛ РКСОК/1.0\r\n\r\n", send("ПРИВЕТ\r\n\r\n"))
}

func TestServerAnswersStalledClient(t *testing.T) {
	endpoint := refusedAddress(t)
	config := testServerConfig(endpoint, "")
	config.ReceiveTimeout = 300 * time.Millisecond
	startTestServer(t, config)

	conn, err := net.Dial("tcp", endpoint)
	require.NoError(t, err)
	defer conn.Close()

	// no version and no terminator, the client then waits without closing
	_, err = conn.Write([]byte("ОТДОВАЙ Иван"))
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(config.ReceiveTimeout+2*time.Second)))
	resp, err := io.ReadAll(conn)
	require.NoError(t, err)
	assert.Equal(t, "НИПОНЯЛ РКСОК/1.0\r\n\r\n", string(resp))
	assert.GreaterOrEqual(t, time.Since(start), config.ReceiveTimeout-50*time.Millisecond)
	assert.Less(t, time.Since(start), config.ReceiveTimeout+time.Second)
}

func TestServerForwardsRejection(t *testing.T) {
	rejection := protocol.NewNotApprovedResponse("нельзя")
	validation, _ := fakeApprovalService(t, protocol.Encode(rejection))

	endpoint := refusedAddress(t)
	startTestServer(t, testServerConfig(endpoint, validation))

	client := tcp.NewTCPClientTransport(common.DefaultMaxMessageSize)
	resp, err := client.Send(endpoint, []byte("ОТДОВАЙ Иван РКСОК/1.0\r\n\r\n"), 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "НИЛЬЗЯ РКСОК/1.0\r\nнельзя\r\n\r\n", string(resp))
}

func TestServerInvalidConfig(t *testing.T) {
	config := testServerConfig("", "")
	s := NewRPCServer(config, tcp.NewTCPServerTransport(), nil)
	assert.Error(t, s.Serve(context.Background()))
}

func TestAdminRouter(t *testing.T) {
	m := NewMetrics()
	m.Request("GET", "OK", time.Now())
	srv := httptest.NewServer(NewAdminRouter(m))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `rksok_requests_total{verb="GET",status="OK"} 1`)
	assert.Contains(t, string(body), "rksok_connections_active 0")
}
