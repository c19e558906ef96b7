// Package timeouts defines the wall-clock limits shared by servers and clients.
package timeouts

import "time"

// GRPCDial caps the wait when dialing the craps server.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single outbound unary call from workers and adapters.
const GRPCRequest = 3 * time.Second

// Shutdown limits graceful stop of servers and telemetry flushes.
const Shutdown = 5 * time.Second
