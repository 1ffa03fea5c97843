package server

import (
	"context"
	"time"

	"github.com/ValentinKolb/rksok/lib/store"
	"github.com/ValentinKolb/rksok/rpc/protocol"
)

// NewStoreDispatcher creates a dispatcher that maps requests onto the store.
// Every storage call is bounded by timeout.
func NewStoreDispatcher(s store.IStore, timeout time.Duration, metrics *Metrics) IDispatcher {
	return &storeDispatcherImpl{
		store:   s,
		timeout: timeout,
		metrics: metrics,
	}
}

type storeDispatcherImpl struct {
	store   store.IStore
	timeout time.Duration
	metrics *Metrics
}

func (d *storeDispatcherImpl) Dispatch(ctx context.Context, req protocol.Message) (resp protocol.Message) {
	// a panicking backend must not take the connection goroutine down
	defer func() {
		if r := recover(); r != nil {
			Logger.Errorf("storage backend panicked on %s: %v", req.Token().Name(), r)
			d.metrics.StorageError(req.Token().Name())
			resp = protocol.Malformed()
		}
	}()

	if d.store == nil {
		Logger.Errorf("dispatcher: store is nil")
		return protocol.Malformed()
	}
	if !req.HasKey() {
		return protocol.Malformed()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	switch req.Token() {
	case protocol.VerbGet:
		val, found, err := d.store.Lookup(ctx, req.Key())
		if err != nil {
			return d.storageFailure("lookup", err)
		}
		// an empty value is the same as no entry
		if !found || val == "" {
			return protocol.NewNotFoundResponse()
		}
		return protocol.NewOKResponse(val)

	case protocol.VerbWrite:
		if !req.HasValue() {
			return protocol.Malformed()
		}
		ok, err := d.store.Store(ctx, req.Key(), req.Value())
		if err != nil {
			return d.storageFailure("store", err)
		}
		if !ok {
			return protocol.Malformed()
		}
		return protocol.NewOKResponse("")

	case protocol.VerbDelete:
		removed, err := d.store.Remove(ctx, req.Key())
		if err != nil {
			return d.storageFailure("remove", err)
		}
		if !removed {
			return protocol.NewNotFoundResponse()
		}
		return protocol.NewOKResponse("")

	default:
		return protocol.Malformed()
	}
}

// storageFailure logs a backend error and answers with INCORRECT_REQUEST
func (d *storeDispatcherImpl) storageFailure(op string, err error) protocol.Message {
	Logger.Errorf("storage %s failed: %v", op, err)
	d.metrics.StorageError(op)
	return protocol.Malformed()
}
