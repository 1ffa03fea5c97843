// Package internal provides the command and query structures exchanged between
// the dstore client and the raft state machine.
//
//   - Command: write operations (Store, Remove). Commands are appended to the
//     raft log and therefore serialized into a compact binary format:
//
//     1 byte   command type
//     4 bytes  key length (uint32, big endian)
//     N bytes  key
//     M bytes  value (rest of the entry, empty for Remove)
//
//   - Query: read operations (Lookup, Count). Queries are executed on the local
//     replica and never serialized.
//
// This package is intended for internal use by the dstore implementation only.
package internal
