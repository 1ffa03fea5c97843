// Package lstore implements a local, in-memory, single-node phonebook based on the
// store.IStore interface. Entries live in a lock-free concurrent map (xsync.MapOf)
// and are not persisted between process restarts.
//
// All operations are thread-safe. Concurrent writes to the same name resolve as
// last write wins. After Close every operation fails with store.RetCUnavailable.
//
// Usage Example:
//
//	s := lstore.NewLocalStore()
//	defer s.Close()
//
//	ok, err := s.Store(ctx, "Иван Хмурый", "89012345678")
//	phone, found, err := s.Lookup(ctx, "Иван Хмурый")
//
// The local store is the default backend and suits testing, development and
// single instance deployments that do not need durable data.
package lstore
