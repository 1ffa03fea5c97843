// Package transport defines the interfaces between the phonebook server/client
// and the socket layer. Implementations live in the tcp and unix packages, both
// built on the protocol independent base package.
//
// Key Components:
//
//   - IRPCServerTransport: accepts connections and calls the registered
//     ServerHandleFunc once per connection with the raw request bytes.
//
//   - IRPCClientTransport: sends one raw request to an endpoint and returns the
//     raw response (one connection per request).
package transport
