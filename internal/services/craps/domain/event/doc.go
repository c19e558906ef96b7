// Package event defines the journal event envelope and the event-type registry
// for the craps write path.
//
// Events are immutable facts emitted by accepted decisions. The registry checks
// envelope addressing and payload validity before storage assigns a sequence.
package event
