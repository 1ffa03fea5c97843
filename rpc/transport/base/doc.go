// Package base provides the protocol independent part of the transport layer:
// the accept loop of the server, the one-shot client and the bounded receive
// shared by both. Concrete transports (tcp, unix) only provide connectors that
// create listeners and connections.
//
// Server:
//
//	Every accepted connection gets its own goroutine and a uuid for logging.
//	The goroutine receives one request with ReceiveMessage, passes the bytes
//	to the registered handler, writes the response within the receive timeout
//	and closes the socket on every path. Cancelling the Listen context closes
//	the listener, Listen returns after the open connections are done.
//
// Receive:
//
//	ReceiveMessage reads 1 KiB chunks until the buffer ends with the message
//	terminator, the peer closes the connection or the deadline (measured from
//	the start of the read) passes. A stalled client therefore never holds a
//	connection longer than the receive timeout. Oversized input is discarded.
//
// Client:
//
//	Send dials a fresh connection per request (the protocol has no connection
//	reuse), writes the request and reads one response with the same bounded
//	receive.
package base
