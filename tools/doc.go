// Package tools defines the MCP tool surface: one tool per operation,
// each pairing a Definition (name, description, argument schema) with a
// Handle function the MCP server invokes.
//
// Handlers uphold the fail-soft contract: operation failures travel as
// text results ("Error: [...]"), never as Go errors, so an MCP client
// always receives a string.
package tools
