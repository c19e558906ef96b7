// Package engine executes craps commands as single units of work.
//
// Execute validates a command, loads the deployment and game it targets,
// asks the aggregate decider for a decision, and, when accepted, appends the
// emitted events, folds them, applies their ledger movements, and persists
// the folded state inside one storage transaction. Rejections and failures
// leave no observable mutation.
package engine
