// Package server implements the phonebook server: the request pipeline that
// decodes a request, asks the approval service and applies the request to storage.
//
// The package focuses on:
//   - Producing exactly one response for every connection, including malformed or truncated input
//   - Forwarding the approval service's rejection to the client verbatim
//   - Mapping storage results and failures onto protocol statuses
//
// Key Components:
//
//   - IValidationClient: Asks the approval service (АМОЖНА?) whether a request may be processed.
//     An unconfigured or refusing service approves every request.
//
//   - IDispatcher: Applies an approved request to a store.IStore. Backend failures are
//     logged and answered with НИПОНЯЛ.
//
//   - Pipeline: Connects decoding, validation and dispatch. Its Handle method is
//     registered with the server transport.
//
//   - Metrics / NewAdminRouter: Request counters exposed over http on /metrics.
//
//   - NewRPCServer: Factory function creating a configured server with the specified
//     transports.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Transport:         "tcp",
//	  Endpoint:          ":3333",
//	  ReceiveTimeout:    common.DefaultReceiveTimeout,
//	  ValidationTimeout: common.DefaultValidationTimeout,
//	  StorageTimeout:    common.DefaultStorageTimeout,
//	  MaxMessageSize:    common.DefaultMaxMessageSize,
//	  LogLevel:          "info",
//	  Storage:           store.Config{Type: store.StorageTypeMemory},
//	}
//
//	s := server.NewRPCServer(config, tcp.NewTCPServerTransport(), tcp.NewTCPClientTransport(config.MaxMessageSize))
//	if err := s.Serve(ctx); err != nil {
//	  log.Fatalf("Server failed: %v", err)
//	}
package server
