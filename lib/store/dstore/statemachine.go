package dstore

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/lib/store/dstore/internal"
	sm "github.com/lni/dragonboat/v4/statemachine"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// State Machine Implementation
// --------------------------------------------------------------------------

// PhonebookStateMachine is a state machine implementation for Dragonboat RAFT.
// The phonebook lives in a concurrent map so that lookups can run in parallel to updates.
type PhonebookStateMachine struct {
	replicaID uint64
	shardID   uint64
	entries   *xsync.MapOf[string, string]
}

// CreateStateMachineFactory returns a function that can be used by dragonboat to create a new state machine for a node host
func CreateStateMachineFactory() sm.CreateConcurrentStateMachineFunc {
	return func(shardID uint64, replicaID uint64) sm.IConcurrentStateMachine {
		return &PhonebookStateMachine{
			replicaID: replicaID,
			shardID:   shardID,
			entries:   xsync.NewMapOf[string, string](),
		}
	}
}

// Lookup handles read-only queries
func (fsm *PhonebookStateMachine) Lookup(itf interface{}) (interface{}, error) {
	q, ok := itf.(internal.Query)
	if !ok {
		return nil, store.NewError(store.RetCInternalError, fmt.Sprintf("invalid Query type: %T", itf))
	}

	switch q.Type {
	case internal.QueryTLookup:
		val, ok := fsm.entries.Load(q.Key)
		return internal.QueryResult{Value: val, Ok: ok}, nil
	case internal.QueryTCount:
		return fsm.entries.Size(), nil
	default:
		return nil, store.NewError(store.RetCInvalidOperation, fmt.Sprintf("unknown Query operation: %d", q.Type))
	}
}

// Update applies committed commands to the phonebook.
// The result value of every entry is a store.RetCode, the data a short description for logs.
func (fsm *PhonebookStateMachine) Update(entries []sm.Entry) ([]sm.Entry, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	start := time.Now()

	for idx, e := range entries {
		if len(e.Cmd) == 0 {
			entries[idx].Result = sm.Result{Value: uint64(store.RetCInvalidOperation), Data: []byte("empty command ignored")}
			continue
		}

		cmd := internal.Command{}
		if err := cmd.Deserialize(e.Cmd); err != nil {
			entries[idx].Result = sm.Result{
				Value: uint64(store.RetCInternalError),
				Data:  []byte(fmt.Sprintf("failed to deserialize command: %v", err)),
			}
			continue
		}

		switch cmd.Type {
		case internal.CommandTStore:
			fsm.entries.Store(cmd.Key, cmd.Value)
			entries[idx].Result = sm.Result{
				Value: uint64(store.RetCSuccess),
				Data:  []byte(fmt.Sprintf("stored: key=%s", cmd.Key)),
			}
		case internal.CommandTRemove:
			if _, loaded := fsm.entries.LoadAndDelete(cmd.Key); !loaded {
				entries[idx].Result = sm.Result{
					Value: uint64(store.RetCNotFound),
					Data:  []byte(fmt.Sprintf("not found: key=%s", cmd.Key)),
				}
				continue
			}
			entries[idx].Result = sm.Result{
				Value: uint64(store.RetCSuccess),
				Data:  []byte(fmt.Sprintf("removed: key=%s", cmd.Key)),
			}
		default:
			entries[idx].Result = sm.Result{
				Value: uint64(store.RetCInvalidOperation),
				Data:  []byte(fmt.Sprintf("unknown Command operation: %s", cmd.Type)),
			}
		}
	}

	if elapsed := time.Since(start); elapsed > time.Millisecond {
		log.Infof("State machine took long to update. Batch updated %d entries, took %.2fms", len(entries), float64(elapsed)/float64(time.Millisecond))
	}
	return entries, nil
}

// PrepareSnapshot copies the current phonebook, the copy is written by SaveSnapshot
// while updates continue on the live map.
func (fsm *PhonebookStateMachine) PrepareSnapshot() (interface{}, error) {
	snapshot := make(map[string]string, fsm.entries.Size())
	fsm.entries.Range(func(key, value string) bool {
		snapshot[key] = value
		return true
	})
	return snapshot, nil
}

// SaveSnapshot writes the prepared copy as JSON
func (fsm *PhonebookStateMachine) SaveSnapshot(ctx interface{}, writer io.Writer, _ sm.ISnapshotFileCollection, _ <-chan struct{}) error {
	snapshot, ok := ctx.(map[string]string)
	if !ok {
		return fmt.Errorf("invalid snapshot context type: %T", ctx)
	}
	return json.NewEncoder(writer).Encode(snapshot)
}

// RecoverFromSnapshot replaces the phonebook with the content of a snapshot
func (fsm *PhonebookStateMachine) RecoverFromSnapshot(r io.Reader, _ []sm.SnapshotFile, _ <-chan struct{}) error {
	var snapshot map[string]string
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	fsm.entries.Clear()
	for key, value := range snapshot {
		fsm.entries.Store(key, value)
	}
	return nil
}

// Close performs any necessary cleanup.
func (fsm *PhonebookStateMachine) Close() error {
	fsm.entries.Clear()
	return nil
}
