package server

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/lib/store/backends"
	"github.com/ValentinKolb/rksok/rpc/common"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new phonebook server.
// serverTransport accepts client connections, validationTransport is used to reach the approval service.
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//		tcp.NewTCPClientTransport(config.MaxMessageSize),
//	)
//
//	if err := s.Serve(ctx); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	serverTransport transport.IRPCServerTransport,
	validationTransport transport.IRPCClientTransport,
) *rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &rpcServer{
		config:              config,
		transport:           serverTransport,
		validationTransport: validationTransport,
		metrics:             NewMetrics(),
	}
}

type rpcServer struct {
	config              common.ServerConfig
	transport           transport.IRPCServerTransport
	validationTransport transport.IRPCClientTransport
	metrics             *Metrics
	store               store.IStore
	pipeline            *Pipeline
}

// Metrics returns the metrics of the server
func (s *rpcServer) Metrics() *Metrics {
	return s.metrics
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(ctx context.Context, connID string, req []byte) []byte {
		s.metrics.ConnectionOpened()
		defer s.metrics.ConnectionClosed()
		return s.pipeline.Handle(ctx, connID, req)
	})
}

func (s *rpcServer) init(ctx context.Context) error {
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}
	if err := s.config.Validate(); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", s.config.String())

	st, err := backends.Open(ctx, s.config.Storage)
	if err != nil {
		return err
	}
	s.store = st

	if s.config.ValidationEndpoint == "" {
		Logger.Warningf("no approval service configured, all requests are processed without approval")
	}

	s.pipeline = NewPipeline(
		NewValidationClient(s.config.ValidationEndpoint, s.config.ValidationTimeout, s.validationTransport),
		NewStoreDispatcher(s.store, s.config.StorageTimeout, s.metrics),
		s.metrics,
	)
	s.registerTransportHandler()

	Logger.Infof("rksok setup completed successfully (storage: %s)", s.config.Storage.Type)
	return nil
}

// Serve initializes storage and accepts connections until ctx is cancelled.
// Connections in flight are completed before the storage is closed.
func (s *rpcServer) Serve(ctx context.Context) error {
	if err := s.init(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.store.Close(); err != nil {
			Logger.Errorf("failed to close storage: %v", err)
		}
	}()

	if s.config.AdminEndpoint != "" {
		go serveAdmin(ctx, s.config.AdminEndpoint, s.metrics)
	}

	if err := s.transport.Listen(ctx, s.config); err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	Logger.Infof("server stopped")
	return nil
}
