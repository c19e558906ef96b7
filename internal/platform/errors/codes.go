// Package errors provides structured error handling with i18n support.
package errors

import (
	"strings"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code. The prefix of a code names its class.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request and storage errors
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeAlreadyExists   Code = "ALREADY_EXISTS"
	CodeStakeZero       Code = "STAKE_ZERO"

	// Configuration errors
	CodeConfigTaxOutOfRange       Code = "CONFIG_TAX_OUT_OF_RANGE"
	CodeConfigTimeoutInvalid      Code = "CONFIG_TIMEOUT_INVALID"
	CodeConfigMaxFadersOutOfRange Code = "CONFIG_MAX_FADERS_OUT_OF_RANGE"
	CodeConfigRetriesOutOfRange   Code = "CONFIG_ROLL_RETRIES_OUT_OF_RANGE"
	CodeConfigIdentityMissing     Code = "CONFIG_IDENTITY_MISSING"
	CodeConfigFrozen              Code = "CONFIG_FROZEN"
	CodeConfigNotInitialized      Code = "CONFIG_NOT_INITIALIZED"
	CodeConfigAlreadyInitialized  Code = "CONFIG_ALREADY_INITIALIZED"

	// Authorization errors
	CodeCallerMissing     Code = "AUTHORIZATION_CALLER_MISSING"
	CodeNotAuthority      Code = "AUTHORIZATION_NOT_AUTHORITY"
	CodeNotShooter        Code = "AUTHORIZATION_NOT_SHOOTER"
	CodeNotParticipant    Code = "AUTHORIZATION_NOT_PARTICIPANT"
	CodeShooterCannotFade Code = "AUTHORIZATION_SHOOTER_CANNOT_FADE"
	CodeReservedAccount   Code = "AUTHORIZATION_RESERVED_ACCOUNT"

	// Phase errors
	CodePhaseInvalid         Code = "PHASE_INVALID"
	CodeRollPending          Code = "PHASE_ROLL_PENDING"
	CodeGameClosed           Code = "PHASE_GAME_CLOSED"
	CodeFaderTableFull       Code = "PHASE_FADER_TABLE_FULL"
	CodeRollRetriesExhausted Code = "PHASE_ROLL_RETRIES_EXHAUSTED"

	// Timing errors
	CodeJoinWindowElapsed Code = "TIMING_JOIN_WINDOW_ELAPSED"
	CodeRollWindowElapsed Code = "TIMING_ROLL_WINDOW_ELAPSED"
	CodeRollWindowOpen    Code = "TIMING_ROLL_WINDOW_OPEN"
	CodeOracleWindowOpen  Code = "TIMING_ORACLE_WINDOW_OPEN"

	// Correlation errors
	CodeTokenMissing          Code = "CORRELATION_TOKEN_MISSING"
	CodeTokenMismatch         Code = "CORRELATION_TOKEN_MISMATCH"
	CodeTokenReused           Code = "CORRELATION_TOKEN_REUSED"
	CodeOracleSignerMismatch  Code = "CORRELATION_SIGNER_MISMATCH"
	CodeOracleProgramMismatch Code = "CORRELATION_PROGRAM_MISMATCH"
	CodeCallbackStale         Code = "CORRELATION_CALLBACK_STALE"
	CodeAttestationInvalid    Code = "CORRELATION_ATTESTATION_INVALID"

	// Entitlement errors
	CodeUnknownParticipant Code = "ENTITLEMENT_UNKNOWN_PARTICIPANT"
	CodeAlreadyClaimed     Code = "ENTITLEMENT_ALREADY_CLAIMED"
	CodeNothingToClaim     Code = "ENTITLEMENT_NOTHING_TO_CLAIM"
	CodeClaimsOutstanding  Code = "ENTITLEMENT_CLAIMS_OUTSTANDING"

	// Arithmetic errors
	CodeArithmeticOverflow Code = "ARITHMETIC_OVERFLOW"

	// Ledger errors
	CodeInsufficientFunds Code = "LEDGER_INSUFFICIENT_FUNDS"
	CodeTransferFailed    Code = "LEDGER_TRANSFER_FAILED"
)

// Class groups codes by the kind of rule they report.
type Class string

const (
	ClassRequest       Class = "request"
	ClassConfiguration Class = "configuration"
	ClassAuthorization Class = "authorization"
	ClassPhase         Class = "phase"
	ClassTiming        Class = "timing"
	ClassCorrelation   Class = "correlation"
	ClassEntitlement   Class = "entitlement"
	ClassArithmetic    Class = "arithmetic"
	ClassLedger        Class = "ledger"
)

var classPrefixes = []struct {
	prefix string
	class  Class
}{
	{"CONFIG_", ClassConfiguration},
	{"AUTHORIZATION_", ClassAuthorization},
	{"PHASE_", ClassPhase},
	{"TIMING_", ClassTiming},
	{"CORRELATION_", ClassCorrelation},
	{"ENTITLEMENT_", ClassEntitlement},
	{"ARITHMETIC_", ClassArithmetic},
	{"LEDGER_", ClassLedger},
}

// Class returns the class a code belongs to.
func (c Code) Class() Class {
	for _, entry := range classPrefixes {
		if strings.HasPrefix(string(c), entry.prefix) {
			return entry.class
		}
	}
	return ClassRequest
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed input or out-of-range configuration
	case CodeInvalidArgument,
		CodeStakeZero,
		CodeTokenMissing,
		CodeConfigTaxOutOfRange,
		CodeConfigTimeoutInvalid,
		CodeConfigMaxFadersOutOfRange,
		CodeConfigRetriesOutOfRange,
		CodeConfigIdentityMissing:
		return codes.InvalidArgument

	// Unauthenticated - caller identity absent or unverifiable
	case CodeCallerMissing,
		CodeAttestationInvalid:
		return codes.Unauthenticated

	// PermissionDenied - caller identity known but not allowed
	case CodeNotAuthority,
		CodeNotShooter,
		CodeNotParticipant,
		CodeShooterCannotFade,
		CodeReservedAccount,
		CodeOracleSignerMismatch,
		CodeOracleProgramMismatch:
		return codes.PermissionDenied

	// FailedPrecondition - state doesn't allow operation
	case CodeConfigFrozen,
		CodeConfigNotInitialized,
		CodePhaseInvalid,
		CodeRollPending,
		CodeGameClosed,
		CodeJoinWindowElapsed,
		CodeRollWindowElapsed,
		CodeRollWindowOpen,
		CodeOracleWindowOpen,
		CodeTokenMismatch,
		CodeTokenReused,
		CodeCallbackStale,
		CodeAlreadyClaimed,
		CodeNothingToClaim,
		CodeClaimsOutstanding,
		CodeInsufficientFunds:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound,
		CodeUnknownParticipant:
		return codes.NotFound

	// AlreadyExists - unique resource constraint
	case CodeAlreadyExists,
		CodeConfigAlreadyInitialized:
		return codes.AlreadyExists

	// ResourceExhausted - bounded capacity used up
	case CodeFaderTableFull,
		CodeRollRetriesExhausted:
		return codes.ResourceExhausted

	case CodeArithmeticOverflow:
		return codes.OutOfRange

	default:
		return codes.Internal
	}
}
