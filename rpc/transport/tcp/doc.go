// Package tcp implements the TCP socket transport of the phonebook service.
// It provides the connectors for the base package, which holds the accept
// loop, the bounded receive and the one-shot client.
//
// Key Components:
//
//   - clientConnector: dials host:port with a connect timeout
//
//   - serverConnector: listens on host:port
package tcp
