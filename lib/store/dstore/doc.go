// Package dstore implements a replicated phonebook on top of the Dragonboat RAFT
// consensus library. It provides a strongly consistent implementation of the
// store.IStore interface that keeps working as long as a majority of the
// replicas is available.
//
// Architecture:
//
//   - Store Client: Implements store.IStore. Writes are serialized into
//     internal.Command values and proposed with SyncPropose, reads are executed
//     as internal.Query values with SyncRead (linearizable).
//
//   - State Machine: A Dragonboat IConcurrentStateMachine holding the phonebook
//     in a concurrent map. Every applied command reports a store.RetCode as its
//     result value, Remove of an unknown name reports store.RetCNotFound.
//
// Snapshots:
//
//	PrepareSnapshot copies the map, SaveSnapshot writes the copy as JSON while new
//	entries keep being applied. RecoverFromSnapshot replaces the map with the
//	snapshot content, afterwards the replica catches up from the raft log.
//
// Error Handling and Retries:
//
//	When Dragonboat reports ErrSystemBusy the operation is retried a few times
//	with a short pause. Every operation is bounded by the caller's context (or a
//	default timeout if the context has no deadline). Failures are reported as
//	store.Error with code store.RetCUnavailable.
//
// Usage:
//
//	s, err := dstore.Open(store.RaftConfig{
//	    ShardID:        1,
//	    ReplicaID:      1,
//	    ClusterMembers: map[uint64]string{1: "localhost:63001"},
//	    RTTMillisecond: 100,
//	    DataDir:        "/tmp/rksok",
//	})
//	if err != nil { ... }
//	defer s.Close()
//
// Deploy with an odd number of replicas (3, 5 or 7) so that a majority can
// always be formed.
package dstore
