package server

import (
	"context"
	"time"

	"github.com/ValentinKolb/rksok/rpc/protocol"
)

// Pipeline runs a received request through decoding, approval and dispatch.
//
//	Receiving -> Malformed                           -> Responded
//	Receiving -> Validating -> Rejected              -> Responded
//	Receiving -> Validating -> Dispatching           -> Responded
//
// Process produces exactly one response for every input, including empty or truncated input.
type Pipeline struct {
	validator  IValidationClient
	dispatcher IDispatcher
	metrics    *Metrics
}

// NewPipeline creates a new pipeline, metrics may be nil
func NewPipeline(validator IValidationClient, dispatcher IDispatcher, metrics *Metrics) *Pipeline {
	return &Pipeline{
		validator:  validator,
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// Handle has the signature of transport.ServerHandleFunc and returns the encoded response
func (p *Pipeline) Handle(ctx context.Context, connID string, raw []byte) []byte {
	return protocol.Encode(p.Process(ctx, connID, string(raw)))
}

// Process handles a single raw request and returns the response message
func (p *Pipeline) Process(ctx context.Context, connID string, raw string) (resp protocol.Message) {
	start := time.Now()
	p.enter(connID, StageReceiving)

	req := protocol.Decode(raw)
	defer func() {
		p.enter(connID, StageResponded)
		p.metrics.Request(req.Token().Name(), resp.Token().Name(), start)
		Logger.Debugf("[%s] %s %q -> %s", connID, req.Token().Name(), req.Key(), resp.Token().Name())
	}()

	// every well-formed message is validated, the dispatcher answers НИПОНЯЛ for anything that is not a phonebook verb
	if req.IsMalformed() {
		p.enter(connID, StageMalformed)
		return protocol.Malformed()
	}

	p.enter(connID, StageValidating)
	verdict := p.validator.Validate(ctx, raw)
	p.metrics.Validation(verdict.Outcome)
	if !verdict.Approved() {
		p.enter(connID, StageRejected)
		if !verdict.Response.Token().IsKnown() {
			return protocol.Malformed()
		}
		return verdict.Response
	}

	p.enter(connID, StageDispatching)
	return p.dispatcher.Dispatch(ctx, req)
}

func (p *Pipeline) enter(connID string, s Stage) {
	p.metrics.Stage(s)
	Logger.Debugf("[%s] stage %s", connID, s)
}
