package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeInvalidArgument           = "INVALID_ARGUMENT"
	CodeNotFound                  = "NOT_FOUND"
	CodeAlreadyExists             = "ALREADY_EXISTS"
	CodeStakeZero                 = "STAKE_ZERO"
	CodeConfigTaxOutOfRange       = "CONFIG_TAX_OUT_OF_RANGE"
	CodeConfigTimeoutInvalid      = "CONFIG_TIMEOUT_INVALID"
	CodeConfigMaxFadersOutOfRange = "CONFIG_MAX_FADERS_OUT_OF_RANGE"
	CodeConfigRetriesOutOfRange   = "CONFIG_ROLL_RETRIES_OUT_OF_RANGE"
	CodeConfigIdentityMissing     = "CONFIG_IDENTITY_MISSING"
	CodeConfigFrozen              = "CONFIG_FROZEN"
	CodeConfigNotInitialized      = "CONFIG_NOT_INITIALIZED"
	CodeConfigAlreadyInitialized  = "CONFIG_ALREADY_INITIALIZED"
	CodeCallerMissing             = "AUTHORIZATION_CALLER_MISSING"
	CodeNotAuthority              = "AUTHORIZATION_NOT_AUTHORITY"
	CodeNotShooter                = "AUTHORIZATION_NOT_SHOOTER"
	CodeNotParticipant            = "AUTHORIZATION_NOT_PARTICIPANT"
	CodeShooterCannotFade         = "AUTHORIZATION_SHOOTER_CANNOT_FADE"
	CodeReservedAccount           = "AUTHORIZATION_RESERVED_ACCOUNT"
	CodePhaseInvalid              = "PHASE_INVALID"
	CodeRollPending               = "PHASE_ROLL_PENDING"
	CodeGameClosed                = "PHASE_GAME_CLOSED"
	CodeFaderTableFull            = "PHASE_FADER_TABLE_FULL"
	CodeRollRetriesExhausted      = "PHASE_ROLL_RETRIES_EXHAUSTED"
	CodeJoinWindowElapsed         = "TIMING_JOIN_WINDOW_ELAPSED"
	CodeRollWindowElapsed         = "TIMING_ROLL_WINDOW_ELAPSED"
	CodeRollWindowOpen            = "TIMING_ROLL_WINDOW_OPEN"
	CodeOracleWindowOpen          = "TIMING_ORACLE_WINDOW_OPEN"
	CodeTokenMissing              = "CORRELATION_TOKEN_MISSING"
	CodeTokenMismatch             = "CORRELATION_TOKEN_MISMATCH"
	CodeTokenReused               = "CORRELATION_TOKEN_REUSED"
	CodeOracleSignerMismatch      = "CORRELATION_SIGNER_MISMATCH"
	CodeOracleProgramMismatch     = "CORRELATION_PROGRAM_MISMATCH"
	CodeCallbackStale             = "CORRELATION_CALLBACK_STALE"
	CodeAttestationInvalid        = "CORRELATION_ATTESTATION_INVALID"
	CodeUnknownParticipant        = "ENTITLEMENT_UNKNOWN_PARTICIPANT"
	CodeAlreadyClaimed            = "ENTITLEMENT_ALREADY_CLAIMED"
	CodeNothingToClaim            = "ENTITLEMENT_NOTHING_TO_CLAIM"
	CodeClaimsOutstanding         = "ENTITLEMENT_CLAIMS_OUTSTANDING"
	CodeArithmeticOverflow        = "ARITHMETIC_OVERFLOW"
	CodeInsufficientFunds         = "LEDGER_INSUFFICIENT_FUNDS"
	CodeTransferFailed            = "LEDGER_TRANSFER_FAILED"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Request errors
		CodeInvalidArgument: "The request is invalid",
		CodeNotFound:        "The requested resource was not found",
		CodeAlreadyExists:   "The resource already exists",
		CodeStakeZero:       "Stake must be greater than zero",

		// Configuration errors
		CodeConfigTaxOutOfRange:       "Tax must be between 0 and {{.Limit}} basis points",
		CodeConfigTimeoutInvalid:      "Timeouts must be greater than zero",
		CodeConfigMaxFadersOutOfRange: "Maximum faders must be between 1 and {{.Limit}}",
		CodeConfigRetriesOutOfRange:   "Maximum roll retries must not exceed {{.Limit}}",
		CodeConfigIdentityMissing:     "Deployment {{.Field}} is required",
		CodeConfigFrozen:              "The deployment is frozen",
		CodeConfigNotInitialized:      "The deployment has not been initialized",
		CodeConfigAlreadyInitialized:  "The deployment is already initialized",

		// Authorization errors
		CodeCallerMissing:     "Caller identity is required",
		CodeNotAuthority:      "Only the deployment authority may do this",
		CodeNotShooter:        "Only the shooter may do this",
		CodeNotParticipant:    "Only the shooter or a fader may do this",
		CodeShooterCannotFade: "The shooter cannot fade their own game",
		CodeReservedAccount:   "Reserved ledger accounts cannot act as callers",

		// Phase errors
		CodePhaseInvalid:         "This action is not allowed while the game is {{.Phase}}",
		CodeRollPending:          "A roll is already in flight",
		CodeGameClosed:           "The game is closed",
		CodeFaderTableFull:       "The fader table is full",
		CodeRollRetriesExhausted: "No roll retries remain",

		// Timing errors
		CodeJoinWindowElapsed: "The join window has elapsed",
		CodeRollWindowElapsed: "The roll window has elapsed",
		CodeRollWindowOpen:    "The roll window is still open",
		CodeOracleWindowOpen:  "The oracle may still deliver a result",

		// Correlation errors
		CodeTokenMissing:          "Randomness request token is required",
		CodeTokenMismatch:         "Randomness token does not match the pending request",
		CodeTokenReused:           "Randomness token was already consumed",
		CodeOracleSignerMismatch:  "Result was not signed by the deployment oracle",
		CodeOracleProgramMismatch: "Result was not produced by the deployment oracle program",
		CodeCallbackStale:         "Result is older than the last accepted callback",
		CodeAttestationInvalid:    "Oracle attestation is invalid",

		// Entitlement errors
		CodeUnknownParticipant: "Caller is not a participant in this game",
		CodeAlreadyClaimed:     "Funds were already claimed",
		CodeNothingToClaim:     "There is nothing to claim",
		CodeClaimsOutstanding:  "Unclaimed funds remain in this game",

		// Arithmetic and ledger errors
		CodeArithmeticOverflow: "Amount overflowed",
		CodeInsufficientFunds:  "Account {{.Account}} has insufficient funds",
		CodeTransferFailed:     "Fund transfer failed",
	},
}
