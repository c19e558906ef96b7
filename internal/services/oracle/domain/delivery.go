// Package domain answers pending craps rolls with signed entropy.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	crapsv1 "github.com/louisbranch/crapshoot/api/craps/v1"
	"github.com/louisbranch/crapshoot/internal/random"
	"github.com/louisbranch/crapshoot/internal/services/craps/oracleauth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type randomnessClient interface {
	ConsumeRandomness(ctx context.Context, in *crapsv1.ConsumeRandomnessRequest, opts ...grpc.CallOption) (*crapsv1.ConsumeRandomnessResponse, error)
}

// Deliverer draws entropy for a pending roll, attests it, and hands it to
// the craps service.
type Deliverer struct {
	client  randomnessClient
	signer  oracleauth.SignerConfig
	entropy func() (uint64, error)
}

// NewDeliverer creates a Deliverer. A nil entropy source uses crypto/rand.
func NewDeliverer(client randomnessClient, signer oracleauth.SignerConfig, entropy func() (uint64, error)) *Deliverer {
	if entropy == nil {
		entropy = random.NewEntropy
	}
	return &Deliverer{client: client, signer: signer, entropy: entropy}
}

// Deliver answers the pending roll of g. It returns the resolved roll.
func (d *Deliverer) Deliver(ctx context.Context, g *crapsv1.Game) (*crapsv1.Roll, error) {
	if d == nil || d.client == nil {
		return nil, Permanent(errors.New("craps client is not configured"))
	}
	token := strings.TrimSpace(g.GetPendingRollToken())
	if token == "" {
		return nil, Permanent(fmt.Errorf("game %s has no pending roll", g.GameID))
	}
	entropy, err := d.entropy()
	if err != nil {
		return nil, fmt.Errorf("draw entropy: %w", err)
	}
	attestation, err := oracleauth.Sign(oracleauth.Delivery{
		DeploymentID: g.DeploymentID,
		GameID:       g.GameID,
		Token:        token,
		Entropy:      entropy,
	}, d.signer)
	if err != nil {
		return nil, Permanent(fmt.Errorf("sign attestation: %w", err))
	}

	resp, err := d.client.ConsumeRandomness(ctx, &crapsv1.ConsumeRandomnessRequest{
		DeploymentID: g.DeploymentID,
		GameID:       g.GameID,
		Token:        token,
		Entropy:      entropy,
		Attestation:  attestation,
	})
	if err != nil {
		if isPermanentDeliveryError(err) {
			return nil, Permanent(err)
		}
		return nil, err
	}
	return resp.Roll, nil
}

// isPermanentDeliveryError reports rejections a later poll cannot cure.
// FailedPrecondition stays retryable: a stale tick or a re-issued token is
// resolved by the next poll.
func isPermanentDeliveryError(err error) bool {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.PermissionDenied, codes.Unauthenticated, codes.NotFound:
		return true
	default:
		return false
	}
}
