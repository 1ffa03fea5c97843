// Package backends maps storage type names to the constructors of the store.IStore
// implementations. The server selects its backend with Open.
package backends
