package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrDeploymentIDRequired indicates a missing deployment id.
	ErrDeploymentIDRequired = errors.New("deployment id is required")
	// ErrGameIDRequired indicates a missing game id on a game-scoped event.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrTypeRequired indicates a missing event type.
	ErrTypeRequired = errors.New("event type is required")
	// ErrTypeUnknown indicates an unregistered event type.
	ErrTypeUnknown = errors.New("event type is not registered")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = errors.New("payload json must be valid")
)

// Type identifies the event type string.
type Type string

// Scope declares which record an event type mutates.
type Scope string

const (
	// ScopeDeployment marks events that mutate deployment config or the ledger.
	ScopeDeployment Scope = "deployment"
	// ScopeGame marks events that mutate a single game.
	ScopeGame Scope = "game"
)

// Event is the canonical journal envelope.
type Event struct {
	DeploymentID string
	GameID       string
	Seq          uint64
	Type         Type
	Tick         uint64
	Timestamp    time.Time
	ActorID      string
	RequestID    string
	InvocationID string
	PayloadJSON  []byte

	// Hash, PrevHash, and ChainHash are assigned by the journal on append.
	Hash      string
	PrevHash  string
	ChainHash string
}

// PayloadValidator validates a payload JSON document.
type PayloadValidator func(json.RawMessage) error

// Definition registers metadata for an event type.
type Definition struct {
	Type            Type
	Scope           Scope
	ValidatePayload PayloadValidator
}

// Registry stores event definitions and validates events before append.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds an event type definition.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return errors.New("registry is required")
	}
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if def.Type == "" {
		return ErrTypeRequired
	}
	switch def.Scope {
	case ScopeDeployment, ScopeGame:
	default:
		return fmt.Errorf("scope must be deployment or game")
	}
	if r.definitions == nil {
		r.definitions = make(map[Type]Definition)
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("event type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// ValidateForAppend validates and normalizes an event before it is journaled.
func (r *Registry) ValidateForAppend(evt Event) (Event, error) {
	evt.DeploymentID = strings.TrimSpace(evt.DeploymentID)
	if evt.DeploymentID == "" {
		return Event{}, ErrDeploymentIDRequired
	}
	evt.Type = Type(strings.TrimSpace(string(evt.Type)))
	if evt.Type == "" {
		return Event{}, ErrTypeRequired
	}
	def, ok := r.Definition(evt.Type)
	if !ok {
		return Event{}, ErrTypeUnknown
	}
	evt.GameID = strings.TrimSpace(evt.GameID)
	if def.Scope == ScopeGame && evt.GameID == "" {
		return Event{}, ErrGameIDRequired
	}
	if len(evt.PayloadJSON) == 0 {
		evt.PayloadJSON = []byte("{}")
	}
	if !json.Valid(evt.PayloadJSON) {
		return Event{}, ErrPayloadInvalid
	}
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(json.RawMessage(evt.PayloadJSON)); err != nil {
			return Event{}, fmt.Errorf("payload invalid: %w", err)
		}
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	return evt, nil
}

// Definition returns the definition for an event type.
func (r *Registry) Definition(eventType Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.definitions[Type(strings.TrimSpace(string(eventType)))]
	return def, ok
}

// ListDefinitions returns a stable, sorted snapshot of registered definitions.
func (r *Registry) ListDefinitions() []Definition {
	if r == nil || len(r.definitions) == 0 {
		return nil
	}
	definitions := make([]Definition, 0, len(r.definitions))
	for _, definition := range r.definitions {
		definitions = append(definitions, definition)
	}
	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Type < definitions[j].Type
	})
	return definitions
}
