package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDeploymentIDRequired indicates a missing deployment id.
	ErrDeploymentIDRequired = errors.New("deployment id is required")
	// ErrGameIDRequired indicates a missing game id on a game-scoped command.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrTypeRequired indicates a missing command type.
	ErrTypeRequired = errors.New("command type is required")
	// ErrTypeUnknown indicates an unregistered command type.
	ErrTypeUnknown = errors.New("command type is not registered")
	// ErrActorIDRequired indicates a missing caller identity.
	ErrActorIDRequired = errors.New("actor id is required")
	// ErrPayloadInvalid indicates malformed payload JSON.
	ErrPayloadInvalid = errors.New("payload json must be valid")
)

// Type identifies the command type string.
type Type string

// Scope declares which record a command addresses.
type Scope string

const (
	// ScopeDeployment addresses the deployment config and ledger.
	ScopeDeployment Scope = "deployment"
	// ScopeGame addresses one game within a deployment.
	ScopeGame Scope = "game"
)

// Command captures the canonical command envelope.
type Command struct {
	DeploymentID string
	GameID       string
	Type         Type
	ActorID      string
	RequestID    string
	InvocationID string
	PayloadJSON  []byte
}

// Definition registers metadata for a command type.
type Definition struct {
	Type            Type
	Scope           Scope
	ValidatePayload PayloadValidator
}

// PayloadValidator validates a payload JSON document.
type PayloadValidator func(json.RawMessage) error

// Registry stores command definitions and validates commands.
type Registry struct {
	definitions map[Type]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[Type]Definition)}
}

// Register adds a new command type definition to the registry.
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
		return fmt.Errorf("command type already registered: %s", def.Type)
	}
	r.definitions[def.Type] = def
	return nil
}

// ValidateForDecision validates and normalizes a command before decision handling.
func (r *Registry) ValidateForDecision(cmd Command) (Command, error) {
	cmd.DeploymentID = strings.TrimSpace(cmd.DeploymentID)
	if cmd.DeploymentID == "" {
		return Command{}, ErrDeploymentIDRequired
	}
	cmd.Type = Type(strings.TrimSpace(string(cmd.Type)))
	if cmd.Type == "" {
		return Command{}, ErrTypeRequired
	}
	def, ok := r.Definition(cmd.Type)
	if !ok {
		return Command{}, ErrTypeUnknown
	}
	cmd.GameID = strings.TrimSpace(cmd.GameID)
	if def.Scope == ScopeGame && cmd.GameID == "" {
		return Command{}, ErrGameIDRequired
	}
	cmd.ActorID = strings.TrimSpace(cmd.ActorID)
	if cmd.ActorID == "" {
		return Command{}, ErrActorIDRequired
	}

	if len(cmd.PayloadJSON) == 0 {
		cmd.PayloadJSON = []byte("{}")
	}
	if !json.Valid(cmd.PayloadJSON) {
		return Command{}, ErrPayloadInvalid
	}
	if def.ValidatePayload != nil {
		if err := def.ValidatePayload(json.RawMessage(cmd.PayloadJSON)); err != nil {
			return Command{}, fmt.Errorf("payload invalid: %w", err)
		}
	}
	return cmd, nil
}

// Definition returns the command definition for a given type.
func (r *Registry) Definition(cmdType Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	cmdType = Type(strings.TrimSpace(string(cmdType)))
	if cmdType == "" {
		return Definition{}, false
	}
	def, ok := r.definitions[cmdType]
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
