// Package unix implements a transport using Unix domain sockets for clients
// running on the same machine. The endpoint is the path of the socket file.
// A socket left at that path by an earlier run is replaced, any other file
// makes Listen fail with ErrNotASocket.
package unix
