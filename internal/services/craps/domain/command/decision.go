package command

import (
	"errors"
	"time"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/event"
)

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Events     []event.Event
	Rejections []Rejection
}

// Rejection captures a domain-level reason a command was declined.
type Rejection struct {
	Code     apperrors.Code
	Message  string
	Metadata map[string]string
}

// Accept returns a decision that emits the provided events.
func Accept(events ...event.Event) Decision {
	return Decision{Events: append([]event.Event(nil), events...)}
}

// Reject returns a decision that carries the provided rejections.
func Reject(rejections ...Rejection) Decision {
	return Decision{Rejections: append([]Rejection(nil), rejections...)}
}

// RejectError converts a domain error into a rejection decision. Errors that
// are not *apperrors.Error are reported under CodeUnknown.
func RejectError(err error) Decision {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return Reject(Rejection{Code: domainErr.Code, Message: domainErr.Message, Metadata: domainErr.Metadata})
	}
	return Reject(Rejection{Code: apperrors.CodeUnknown, Message: err.Error()})
}

// Rejected reports whether the decision declined the command.
func (d Decision) Rejected() bool {
	return len(d.Rejections) > 0
}

// Err returns the first rejection as a domain error, or nil when accepted.
func (d Decision) Err() error {
	if !d.Rejected() {
		return nil
	}
	first := d.Rejections[0]
	return apperrors.WithMetadata(first.Code, first.Message, first.Metadata)
}

// Validate checks that a decision is either accepted or rejected, not both or neither.
func (d Decision) Validate() error {
	switch {
	case len(d.Events) == 0 && len(d.Rejections) == 0:
		return errors.New("decision must carry events or rejections")
	case len(d.Events) > 0 && len(d.Rejections) > 0:
		return errors.New("decision must not carry both events and rejections")
	}
	return nil
}

// NewEvent builds an event by copying the envelope fields from a command.
func NewEvent(cmd Command, eventType event.Type, payloadJSON []byte, tick uint64, now time.Time) event.Event {
	return event.Event{
		DeploymentID: cmd.DeploymentID,
		GameID:       cmd.GameID,
		Type:         eventType,
		Tick:         tick,
		Timestamp:    now.UTC(),
		ActorID:      cmd.ActorID,
		RequestID:    cmd.RequestID,
		InvocationID: cmd.InvocationID,
		PayloadJSON:  payloadJSON,
	}
}
