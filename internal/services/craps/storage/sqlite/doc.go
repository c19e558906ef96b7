// Package sqlite provides the SQLite-backed craps store: deployments, games
// with their fader slots, the hash-chained event journal, and the hosted
// account ledger.
//
// Amounts and ticks are uint64 in the domain and are stored bit-for-bit in
// SQLite INTEGER columns; ordering and arithmetic on them happen in Go.
package sqlite
