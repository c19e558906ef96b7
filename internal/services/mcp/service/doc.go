// Package service hosts the crapshoot MCP server and its transports.
package service
