package deployment

import (
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/crapshoot/internal/platform/errors"
	"github.com/louisbranch/crapshoot/internal/services/craps/domain/payout"
)

const (
	// MaxTaxBps caps the tax at 25% of the pot.
	MaxTaxBps = 2500
	// MaxFadersLimit is the hard capacity of a fader table.
	MaxFadersLimit = 16
	// MaxRollRetriesLimit caps how often a silent oracle request may be re-issued.
	MaxRollRetriesLimit = 10
)

// Config holds the parameters every game decision reads.
type Config struct {
	Authority        string
	OracleProgram    string
	OracleSigner     string
	Treasury         string
	TaxBps           uint32
	JoinTimeoutTicks uint64
	RollTimeoutTicks uint64
	MaxFaders        uint8
	MaxRollRetries   uint32
	Frozen           bool
}

// State is the replayed deployment record.
type State struct {
	DeploymentID string
	Initialized  bool
	Config       Config
}

// Validate checks the configurable ranges. Authority is checked separately.
func (c Config) Validate() error {
	if c.TaxBps > MaxTaxBps {
		return apperrors.WithMetadata(apperrors.CodeConfigTaxOutOfRange, "tax_bps exceeds maximum", limit(MaxTaxBps))
	}
	if c.JoinTimeoutTicks == 0 || c.RollTimeoutTicks == 0 {
		return apperrors.New(apperrors.CodeConfigTimeoutInvalid, "timeouts must be positive")
	}
	if c.MaxFaders < 1 || c.MaxFaders > MaxFadersLimit {
		return apperrors.WithMetadata(apperrors.CodeConfigMaxFadersOutOfRange, "max_faders out of range", limit(MaxFadersLimit))
	}
	if c.MaxRollRetries > MaxRollRetriesLimit {
		return apperrors.WithMetadata(apperrors.CodeConfigRetriesOutOfRange, "max_roll_retries out of range", limit(MaxRollRetriesLimit))
	}
	identities := []struct{ field, value string }{
		{field: "oracle_program", value: c.OracleProgram},
		{field: "oracle_signer", value: c.OracleSigner},
		{field: "treasury", value: c.Treasury},
	}
	for _, id := range identities {
		if strings.TrimSpace(id.value) == "" {
			return apperrors.WithMetadata(apperrors.CodeConfigIdentityMissing, id.field+" is required", map[string]string{"Field": id.field})
		}
		if payout.Reserved(id.value) {
			return apperrors.WithMetadata(apperrors.CodeReservedAccount, id.field+" names a reserved account", map[string]string{"Field": id.field})
		}
	}
	return nil
}

func limit(n int) map[string]string {
	return map[string]string{"Limit": strconv.Itoa(n)}
}
