package craps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/platform/id"
	"github.com/louisbranch/crapshoot/internal/random"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/command"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/engine"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	"github.com/louisbranch/crapshoot/internal/services/craps/storage"
)

// Domain executes craps commands and returns the result.
type Domain interface {
	Execute(ctx context.Context, cmd command.Command) (engine.Result, error)
}

// Stores groups the read-side storage interfaces for service injection.
type Stores struct {
	Deployment storage.DeploymentReader
	Game       storage.GameReader
	Event      storage.EventReader
	Ledger     storage.LedgerReader
}

// StoresFrom fills every read-side interface from one store.
func StoresFrom(store storage.Store) Stores {
	return Stores{
		Deployment: store,
		Game:       store,
		Event:      store,
		Ledger:     store,
	}
}

// Validate checks that every store field is non-nil.
func (s Stores) Validate() error {
	var missing []string
	if s.Deployment == nil {
		missing = append(missing, "Deployment")
	}
	if s.Game == nil {
		missing = append(missing, "Game")
	}
	if s.Event == nil {
		missing = append(missing, "Event")
	}
	if s.Ledger == nil {
		missing = append(missing, "Ledger")
	}
	if len(missing) > 0 {
		return fmt.Errorf("stores not configured: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Service implements the craps.v1.CrapsService gRPC API.
type Service struct {
	crapsv1.UnimplementedCrapsServiceServer
	domain     Domain
	stores     Stores
	verifier   oracleauth.VerifierConfig
	gameIDs    func() (string, error)
	rollTokens func() (string, error)
}

// Option customizes a Service.
type Option func(*Service)

// WithGameIDGenerator replaces the generator used for server-assigned game ids.
func WithGameIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		if gen != nil {
			s.gameIDs = gen
		}
	}
}

// WithRollTokenGenerator replaces the generator used for server-drawn roll
// correlation tokens.
func WithRollTokenGenerator(gen func() (string, error)) Option {
	return func(s *Service) {
		if gen != nil {
			s.rollTokens = gen
		}
	}
}

// NewService creates a Service. The verifier checks oracle attestations on
// ConsumeRandomness; a verifier without a key rejects every delivery.
func NewService(domain Domain, stores Stores, verifier oracleauth.VerifierConfig, opts ...Option) (*Service, error) {
	if domain == nil {
		return nil, errors.New("domain is required")
	}
	if err := stores.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		domain:     domain,
		stores:     stores,
		verifier:   verifier,
		gameIDs:    id.NewID,
		rollTokens: random.NewToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
