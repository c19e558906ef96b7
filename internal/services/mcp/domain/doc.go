// Package domain defines the read-only MCP tools that let agents inspect craps
// deployments, games, and their event journals.
//
// Handlers translate tool input into craps gRPC reads and flatten responses
// into JSON-friendly results. No tool mutates game state.
package domain
