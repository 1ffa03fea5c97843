// Package store defines the storage contract of the phonebook service and the
// error type shared by all backends.
//
// Key Components:
//
//   - IStore Interface: Lookup, Store and Remove of the phone number(s) stored
//     for a name, plus Close. Every backend implements this interface so the
//     server can switch backends through configuration only.
//
//   - Error System: Backend failures are reported as *Error carrying a RetCode
//     (RetCInternalError, RetCInvalidOperation, RetCUnavailable) and a message.
//
//   - Config: StorageType selects the backend, the matching section of Config
//     carries its parameters.
//
// Implementations:
//
//	- lstore:   in-memory, single node (default)
//	- dstore:   replicated via Dragonboat RAFT
//	- pgstore:  PostgreSQL table userphones (gorm)
//	- rstore:   redis (go-redis)
//	- bstore:   embedded badger database
//	- ddbstore: AWS DynamoDB table
//
// The backends package maps the StorageType names to these constructors,
// the testing package holds the conformance suite every backend runs.
package store
