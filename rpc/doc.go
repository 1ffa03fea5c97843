// Package rpc provides the network side of the phonebook: the wire protocol,
// the server pipeline and the client. It acts as the communication layer
// between clients, the server, the approval service and storage.
//
// The package is organized into several subpackages:
//
//   - protocol: The RKSOK message type and its text codec.
//
//   - common: Configuration structures and logging used across the rpc packages.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets). One request and one response per connection.
//
//   - client: Phonebook client sending requests and rendering human readable answers.
//
//   - server: The request pipeline (decode, approval, dispatch), metrics and the
//     server that ties storage and transport together.
package rpc
