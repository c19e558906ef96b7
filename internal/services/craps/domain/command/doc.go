// Package command defines the command envelope and registry for the craps write
// path.
//
// Commands express caller intent. The registry normalizes the envelope and
// validates payload JSON so deciders only ever see well-formed input.
package command
