// Package oracleauth signs and verifies oracle entropy attestations.
//
// An attestation is a compact EdDSA JWT. Its issuer names the oracle signer
// identity and its audience names the oracle program; both are compared with
// the deployment config by the domain, not here. This package only proves
// the delivery was signed by the configured key and binds it to one game,
// one correlation token, and one entropy value.
package oracleauth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
)

// DefaultTTL bounds how long a signed attestation stays acceptable.
const DefaultTTL = 5 * time.Minute

// Delivery is the entropy delivery an attestation vouches for.
type Delivery struct {
	DeploymentID string
	GameID       string
	Token        string
	Entropy      uint64
}

// Identity names the oracle that produced a delivery.
type Identity struct {
	Signer  string
	Program string
}

// VerifierConfig defines how attestations are verified.
type VerifierConfig struct {
	Key ed25519.PublicKey
	// Issuers optionally restricts accepted signer identities.
	Issuers []string
	Now     func() time.Time
}

// SignerConfig defines how attestations are signed.
type SignerConfig struct {
	Key      ed25519.PrivateKey
	Identity Identity
	TTL      time.Duration
	Now      func() time.Time
}

type attestationClaims struct {
	jwt.RegisteredClaims
	DeploymentID string `json:"deployment_id"`
	GameID       string `json:"game_id"`
	Token        string `json:"token"`
	Entropy      string `json:"entropy"`
}

// Sign issues an attestation for delivery.
func Sign(delivery Delivery, cfg SignerConfig) (string, error) {
	if len(cfg.Key) != ed25519.PrivateKeySize {
		return "", errors.New("attestation signing key is not configured")
	}
	if strings.TrimSpace(cfg.Identity.Signer) == "" || strings.TrimSpace(cfg.Identity.Program) == "" {
		return "", errors.New("attestation identity is required")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuedAt := now().UTC()
	claims := attestationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Identity.Signer,
			Audience:  jwt.ClaimStrings{cfg.Identity.Program},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		DeploymentID: delivery.DeploymentID,
		GameID:       delivery.GameID,
		Token:        delivery.Token,
		Entropy:      strconv.FormatUint(delivery.Entropy, 10),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign attestation: %w", err)
	}
	return signed, nil
}

// Verify checks the attestation signature and that it vouches for exactly
// the expected delivery, then returns the oracle identity it names.
func Verify(attestation string, expected Delivery, cfg VerifierConfig) (Identity, error) {
	attestation = strings.TrimSpace(attestation)
	if attestation == "" {
		return Identity{}, apperrors.New(apperrors.CodeAttestationInvalid, "attestation is required")
	}
	if len(cfg.Key) != ed25519.PublicKeySize {
		return Identity{}, errors.New("attestation verifier is not configured")
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	var parsed attestationClaims
	_, err := jwt.ParseWithClaims(attestation, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}

	if parsed.ExpiresAt == nil {
		return Identity{}, apperrors.New(apperrors.CodeAttestationInvalid, "attestation exp is required")
	}
	if !parsed.ExpiresAt.Time.After(now().UTC()) {
		return Identity{}, apperrors.New(apperrors.CodeAttestationInvalid, "attestation is expired")
	}
	issuer := strings.TrimSpace(parsed.Issuer)
	if issuer == "" {
		return Identity{}, mismatch("issuer")
	}
	if len(cfg.Issuers) > 0 && !slices.Contains(cfg.Issuers, issuer) {
		return Identity{}, mismatch("issuer")
	}
	if len(parsed.Audience) == 0 || strings.TrimSpace(parsed.Audience[0]) == "" {
		return Identity{}, mismatch("audience")
	}

	if parsed.DeploymentID != expected.DeploymentID {
		return Identity{}, mismatch("deployment_id")
	}
	if parsed.GameID != expected.GameID {
		return Identity{}, mismatch("game_id")
	}
	if parsed.Token != expected.Token {
		return Identity{}, mismatch("token")
	}
	if parsed.Entropy != strconv.FormatUint(expected.Entropy, 10) {
		return Identity{}, mismatch("entropy")
	}
	return Identity{Signer: issuer, Program: parsed.Audience[0]}, nil
}

// ParsePublicKey decodes a base64 ed25519 public key.
func ParsePublicKey(value string) (ed25519.PublicKey, error) {
	raw, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode oracle public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("oracle public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// ParsePrivateKey decodes a base64 ed25519 private key or 32-byte seed.
func ParsePrivateKey(value string) (ed25519.PrivateKey, error) {
	raw, err := decodeBase64(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("decode oracle private key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	}
	return nil, fmt.Errorf("oracle private key must be %d or %d bytes", ed25519.SeedSize, ed25519.PrivateKeySize)
}

func mismatch(field string) error {
	return apperrors.WithMetadata(
		apperrors.CodeAttestationInvalid,
		"attestation "+field+" mismatch",
		map[string]string{"Field": field},
	)
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeAttestationInvalid, "attestation signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeAttestationInvalid, "attestation alg is invalid")
	}
	return apperrors.New(apperrors.CodeAttestationInvalid, "attestation is invalid")
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
