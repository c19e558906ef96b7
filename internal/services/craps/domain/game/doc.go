// Package game owns the per-game wagering state machine: stake deposits,
// roll requests, oracle resolution, forfeiture, cancellation, claims, and close.
//
// Decide is pure. It reads the game State and the deployment Config and
// returns events; Fold replays those events into State. Fund movements are
// derived from events by Movements so storage can apply them in the same
// transaction as the journal append.
package game
