package dstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/lib/store/dstore/internal"
	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/client"
	"github.com/lni/dragonboat/v4/config"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	retries = 5
	log     = logger.GetLogger("store")
)

// defaultTimeout bounds raft operations if the caller's context carries no deadline
const defaultTimeout = 5 * time.Second

// Dragonboat uses RTT (Round Trip Time) to determine the timing of elections and heartbeats.
// These default values are selected according to the RAFT Paper
const (
	electionRTTFactor  = 10
	heartbeatRTTFactor = 1
)

// ToDragonboatConfig converts the raft section of the storage config to a Dragonboat shard Config
func ToDragonboatConfig(c store.RaftConfig) config.Config {
	return config.Config{
		ReplicaID:          c.ReplicaID,
		ShardID:            c.ShardID,
		ElectionRTT:        electionRTTFactor,
		HeartbeatRTT:       heartbeatRTTFactor,
		CheckQuorum:        true,
		SnapshotEntries:    c.SnapshotEntries,
		CompactionOverhead: c.CompactionOverhead,
	}
}

// ToNodeHostConfig creates a NodeHostConfig for Dragonboat
func ToNodeHostConfig(c store.RaftConfig) config.NodeHostConfig {
	return config.NodeHostConfig{
		WALDir:         c.DataDir,
		NodeHostDir:    c.DataDir,
		RTTMillisecond: c.RTTMillisecond,
		RaftAddress:    c.ClusterMembers[c.ReplicaID],
	}
}

// storeImpl is the raft backed implementation of store.IStore.
// It encapsulates a Dragonboat NodeHost which is used to communicate with the state machine.
type storeImpl struct {
	nh      *dragonboat.NodeHost
	shardID uint64
	cs      *client.Session
	ownsNH  bool
}

// NewDistributedStore creates a new distributed store on top of a running replica of the shard.
// The node host stays owned by the caller.
func NewDistributedStore(nh *dragonboat.NodeHost, shardID uint64) store.IStore {
	return &storeImpl{
		nh:      nh,
		shardID: shardID,
		cs:      nh.GetNoOPSession(shardID),
	}
}

// Open creates a node host, starts the phonebook replica and returns a store using it.
// Closing the store stops the node host.
func Open(c store.RaftConfig) (store.IStore, error) {
	nh, err := dragonboat.NewNodeHost(ToNodeHostConfig(c))
	if err != nil {
		return nil, fmt.Errorf("failed to create node host: %w", err)
	}
	if err := nh.StartConcurrentReplica(c.ClusterMembers, false, CreateStateMachineFactory(), ToDragonboatConfig(c)); err != nil {
		nh.Close()
		return nil, fmt.Errorf("failed to start shard %d: %w", c.ShardID, err)
	}
	log.Infof("started raft replica %d of shard %d", c.ReplicaID, c.ShardID)

	s := NewDistributedStore(nh, c.ShardID).(*storeImpl)
	s.ownsNH = true
	return s, nil
}

// --------------------------------------------------------------------------
// Internal write and read operations (used by interface methods)
// --------------------------------------------------------------------------

// withDeadline makes sure ctx has a deadline, dragonboat rejects contexts without one
func withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

// backoff waits before the next retry, it returns false if ctx is done
func backoff(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(defaultTimeout / 50):
		return true
	}
}

// write proposes a Command via SyncPropose and returns the result code of the state machine.
func (s *storeImpl) write(ctx context.Context, cmd internal.Command) (store.RetCode, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	for i := 0; i < retries; i++ {
		res, err := s.nh.SyncPropose(ctx, s.cs, cmd.Serialize())

		if errors.Is(err, dragonboat.ErrSystemBusy) {
			log.Infof("SyncPropose: System busy, retrying (%d/%d)...", i+1, retries)
			if !backoff(ctx) {
				break
			}
			continue
		}
		if err != nil {
			return store.RetCUnavailable, store.NewError(store.RetCUnavailable, err.Error())
		}
		return store.RetCode(res.Value), nil
	}
	return store.RetCUnavailable, store.NewError(store.RetCUnavailable, "timeout")
}

// read is a generic helper function that queries the state machine
// and attempts to convert the response into the expected type R.
// Reads are linearizable (SyncRead), busy errors are retried up to 5 times.
func read[R any](ctx context.Context, s *storeImpl, q internal.Query) (R, error) {
	var zero R
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	for i := 0; i < retries; i++ {
		res, err := s.nh.SyncRead(ctx, s.shardID, q)

		if errors.Is(err, dragonboat.ErrSystemBusy) {
			log.Infof("SyncRead: System busy, retrying (%d/%d)...", i+1, retries)
			if !backoff(ctx) {
				break
			}
			continue
		}

		if err != nil {
			var se *store.Error
			if errors.As(err, &se) {
				return zero, se
			}
			return zero, store.NewError(store.RetCUnavailable, err.Error())
		}

		casted, ok := res.(R)
		if !ok {
			return zero, store.NewError(store.RetCInternalError,
				fmt.Sprintf("unexpected type: received %T, expected %T", res, zero))
		}
		return casted, nil
	}
	return zero, store.NewError(store.RetCUnavailable, "timeout")
}

// --------------------------------------------------------------------------
// Interface Methods (docs see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Lookup(ctx context.Context, key string) (string, bool, error) {
	res, err := read[internal.QueryResult](ctx, s, internal.Query{
		Type: internal.QueryTLookup,
		Key:  key,
	})
	if err != nil {
		return "", false, err
	}
	return res.Value, res.Ok, nil
}

func (s *storeImpl) Store(ctx context.Context, key, value string) (bool, error) {
	code, err := s.write(ctx, internal.Command{
		Type:  internal.CommandTStore,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return false, err
	}
	if code != store.RetCSuccess {
		return false, store.NewError(code, "store rejected by state machine")
	}
	return true, nil
}

func (s *storeImpl) Remove(ctx context.Context, key string) (bool, error) {
	code, err := s.write(ctx, internal.Command{
		Type: internal.CommandTRemove,
		Key:  key,
	})
	if err != nil {
		return false, err
	}
	switch code {
	case store.RetCSuccess:
		return true, nil
	case store.RetCNotFound:
		return false, nil
	default:
		return false, store.NewError(code, "remove rejected by state machine")
	}
}

func (s *storeImpl) Close() error {
	if s.ownsNH {
		s.nh.Close()
	}
	return nil
}
