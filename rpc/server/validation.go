package server

import (
	"context"
	"errors"
	"syscall"
	"time"

	"github.com/ValentinKolb/rksok/rpc/protocol"
	"github.com/ValentinKolb/rksok/rpc/transport"
	"github.com/ValentinKolb/rksok/rpc/transport/base"
)

// ValidationOutcome describes how the approval service answered
type ValidationOutcome int

const (
	// ValidationApproved - the service answered МОЖНА
	ValidationApproved ValidationOutcome = iota
	// ValidationRejected - the service answered anything else, the answer is forwarded to the client
	ValidationRejected
	// ValidationSkipped - no approval service is configured
	ValidationSkipped
	// ValidationUnavailable - the service refused the connection, the request is processed anyway
	ValidationUnavailable
	// ValidationFailed - the service could not be reached for another reason
	ValidationFailed
)

func (o ValidationOutcome) String() string {
	switch o {
	case ValidationApproved:
		return "approved"
	case ValidationRejected:
		return "rejected"
	case ValidationSkipped:
		return "skipped"
	case ValidationUnavailable:
		return "unavailable"
	case ValidationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ValidationResult is the verdict of the approval step.
// Response is only meaningful if the request was not approved.
type ValidationResult struct {
	Outcome  ValidationOutcome
	Response protocol.Message
}

// Approved reports whether the request may be dispatched to storage
func (r ValidationResult) Approved() bool {
	switch r.Outcome {
	case ValidationApproved, ValidationSkipped, ValidationUnavailable:
		return true
	default:
		return false
	}
}

// NewValidationClient creates a client for the approval service at endpoint (host:port).
// An empty endpoint disables approval and every request is approved.
func NewValidationClient(endpoint string, timeout time.Duration, t transport.IRPCClientTransport) IValidationClient {
	return &validationClientImpl{
		endpoint:  endpoint,
		timeout:   timeout,
		transport: t,
	}
}

type validationClientImpl struct {
	endpoint  string
	timeout   time.Duration
	transport transport.IRPCClientTransport
}

func (c *validationClientImpl) Validate(ctx context.Context, rawRequest string) ValidationResult {
	if c.endpoint == "" || c.transport == nil {
		return ValidationResult{Outcome: ValidationSkipped}
	}
	if err := ctx.Err(); err != nil {
		return ValidationResult{Outcome: ValidationFailed, Response: protocol.Malformed()}
	}

	check, err := protocol.NewApprovalCheck(rawRequest)
	if err != nil {
		Logger.Warningf("cannot wrap request for approval: %v", err)
		return ValidationResult{Outcome: ValidationFailed, Response: protocol.Malformed()}
	}

	raw, err := c.transport.Send(c.endpoint, protocol.Encode(check), c.timeout)
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		// nobody is listening, process the request without approval
		Logger.Warningf("approval service %s refused the connection, request is processed without approval", c.endpoint)
		return ValidationResult{Outcome: ValidationUnavailable}
	case errors.Is(err, base.ErrReceiveTimeout):
		// the partial answer is decoded like any other answer (usually НИПОНЯЛ)
		Logger.Warningf("approval service %s did not answer within %s", c.endpoint, c.timeout)
	case err != nil:
		Logger.Errorf("approval service %s: %v", c.endpoint, err)
		return ValidationResult{Outcome: ValidationFailed, Response: protocol.Malformed()}
	}

	reply := protocol.Decode(string(raw))
	if reply.Token() == protocol.StatusApproved {
		return ValidationResult{Outcome: ValidationApproved}
	}
	return ValidationResult{Outcome: ValidationRejected, Response: reply}
}
