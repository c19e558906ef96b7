// Package craps implements the craps.v1 gRPC API over the command engine and
// the read-side stores.
package craps
