package audit

import (
	"fmt"
	"time"
)

// Result represents the outcome of an audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Event is a single security audit entry. Events record abuse-prevention
// decisions (lockouts, admin unlocks) and administrative actions so they can
// be routed to an alerting pipeline independently of routine logging.
type Event struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Identifier string         `json:"identifier,omitempty"`
	Actor      string         `json:"actor,omitempty"`
	Result     Result         `json:"result"`
	IP         string         `json:"ip,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks that the event carries the required fields.
func (e *Event) Validate() error {
	if e.Action == "" {
		return fmt.Errorf("%w: action is required", ErrEventValidation)
	}
	return nil
}

// EventOption applies configuration to an Event during creation.
type EventOption func(*Event)

// WithIdentifier sets the normalized account identifier the event concerns.
func WithIdentifier(id string) EventOption {
	return func(e *Event) { e.Identifier = id }
}

// WithActor records who performed the action, for administrative events.
func WithActor(actor string) EventOption {
	return func(e *Event) { e.Actor = actor }
}

// WithResult overrides the default success result.
func WithResult(r Result) EventOption {
	return func(e *Event) { e.Result = r }
}

// WithIP records the client IP associated with the event.
func WithIP(ip string) EventOption {
	return func(e *Event) { e.IP = ip }
}

// WithMetadata merges additional key/value context into the event.
func WithMetadata(md map[string]any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any, len(md))
		}
		for k, v := range md {
			e.Metadata[k] = v
		}
	}
}
