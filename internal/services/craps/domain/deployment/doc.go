// Package deployment owns the process-wide wagering parameters: tax rate,
// timeout windows, trusted oracle identities, treasury, and the freeze flag.
//
// Config is created once by its authority and only that authority may change
// it while unfrozen. Every game decision receives the current Config by value.
package deployment
