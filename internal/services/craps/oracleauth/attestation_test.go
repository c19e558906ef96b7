package oracleauth

import (
	"crypto/ed25519"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
)

var fixedNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func testKeys(t *testing.T, seedByte byte) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv
}

func testDelivery() Delivery {
	return Delivery{DeploymentID: "dep-1", GameID: "g1", Token: "tok-1", Entropy: 1<<63 + 5}
}

func signTest(t *testing.T, priv ed25519.PrivateKey, delivery Delivery) string {
	t.Helper()
	signed, err := Sign(delivery, SignerConfig{
		Key:      priv,
		Identity: Identity{Signer: "signer", Program: "prog"},
		Now:      func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return signed
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	pub, priv := testKeys(t, 1)
	signed := signTest(t, priv, testDelivery())
	identity, err := Verify(signed, testDelivery(), VerifierConfig{
		Key:     pub,
		Issuers: []string{"signer"},
		Now:     func() time.Time { return fixedNow.Add(time.Minute) },
	})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity != (Identity{Signer: "signer", Program: "prog"}) {
		t.Fatalf("identity = %+v", identity)
	}
}

func TestVerifyRejects(t *testing.T) {
	t.Parallel()

	pub, priv := testKeys(t, 1)
	otherPub, _ := testKeys(t, 2)
	signed := signTest(t, priv, testDelivery())
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": "signer"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name        string
		attestation string
		expected    func(Delivery) Delivery
		cfg         VerifierConfig
	}{
		{name: "empty", attestation: " ", cfg: VerifierConfig{Key: pub}},
		{name: "wrong key", attestation: signed, cfg: VerifierConfig{Key: otherPub}},
		{name: "alg none", attestation: noneToken, cfg: VerifierConfig{Key: pub}},
		{name: "expired", attestation: signed, cfg: VerifierConfig{Key: pub, Now: func() time.Time { return fixedNow.Add(DefaultTTL) }}},
		{name: "issuer not allowed", attestation: signed, cfg: VerifierConfig{Key: pub, Issuers: []string{"other"}}},
		{
			name:        "token",
			attestation: signed,
			expected:    func(d Delivery) Delivery { d.Token = "tok-2"; return d },
			cfg:         VerifierConfig{Key: pub},
		},
		{
			name:        "entropy",
			attestation: signed,
			expected:    func(d Delivery) Delivery { d.Entropy++; return d },
			cfg:         VerifierConfig{Key: pub},
		},
		{
			name:        "game",
			attestation: signed,
			expected:    func(d Delivery) Delivery { d.GameID = "g2"; return d },
			cfg:         VerifierConfig{Key: pub},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expected := testDelivery()
			if tt.expected != nil {
				expected = tt.expected(expected)
			}
			cfg := tt.cfg
			if cfg.Now == nil {
				cfg.Now = func() time.Time { return fixedNow }
			}
			_, err := Verify(tt.attestation, expected, cfg)
			if got := apperrors.CodeOf(err); got != apperrors.CodeAttestationInvalid {
				t.Fatalf("code = %s, want %s (err %v)", got, apperrors.CodeAttestationInvalid, err)
			}
		})
	}
}

func TestVerifyRequiresConfiguredKey(t *testing.T) {
	t.Parallel()

	_, priv := testKeys(t, 1)
	if _, err := Verify(signTest(t, priv, testDelivery()), testDelivery(), VerifierConfig{}); err == nil {
		t.Fatal("expected unconfigured verifier error")
	}
	if _, err := Sign(testDelivery(), SignerConfig{Key: priv}); err == nil {
		t.Fatal("expected missing identity error")
	}
}

func TestParseKeys(t *testing.T) {
	t.Parallel()

	pub, priv := testKeys(t, 3)
	gotPub, err := ParsePublicKey(base64.StdEncoding.EncodeToString(pub))
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !gotPub.Equal(pub) {
		t.Fatal("public key mismatch")
	}
	fromSeed, err := ParsePrivateKey(base64.RawStdEncoding.EncodeToString(priv.Seed()))
	if err != nil {
		t.Fatalf("ParsePrivateKey seed: %v", err)
	}
	if !fromSeed.Equal(priv) {
		t.Fatal("private key from seed mismatch")
	}
	if _, err := ParsePublicKey("c2hvcnQ="); err == nil {
		t.Fatal("expected short key error")
	}
	if _, err := ParsePrivateKey("!!"); err == nil {
		t.Fatal("expected decode error")
	}
}
