package server

import (
	"context"

	"github.com/ValentinKolb/rksok/rpc/protocol"
)

// IDispatcher applies a validated request to the storage backend.
// Dispatch never returns an error and never panics: every failure is expressed
// as a protocol response (НИПОНЯЛ or НИНАШОЛ).
type IDispatcher interface {
	Dispatch(ctx context.Context, req protocol.Message) (resp protocol.Message)
}

// IValidationClient asks the external approval service whether a request may be processed.
// rawRequest is the request text exactly as received from the client.
type IValidationClient interface {
	Validate(ctx context.Context, rawRequest string) ValidationResult
}

// --------------------------------------------------------------------------
// Pipeline stages
// --------------------------------------------------------------------------

// Stage names a step of the per-connection request pipeline. Used in logs and metrics.
type Stage string

const (
	StageReceiving   Stage = "receiving"
	StageMalformed   Stage = "malformed"
	StageValidating  Stage = "validating"
	StageRejected    Stage = "rejected"
	StageDispatching Stage = "dispatching"
	StageResponded   Stage = "responded"
	StageClosed      Stage = "closed"
)
