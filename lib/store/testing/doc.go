// Package testing provides a standardised conformance test suite for
// implementations of the store.IStore interface.
//
// Example usage:
//
//	factory := func(t testing.TB) store.IStore {
//		return lstore.NewLocalStore()
//	}
//
//	storetesting.RunStoreTests(t, "LocalStore", factory)
package testing
