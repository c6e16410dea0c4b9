// Package errors provides standardized error handling for the dxdmcp adapter.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary transport problems), Invalid (bad input or
// configuration) and Fatal (unrecoverable states). The adapter itself
// never retries — every tool call is a single attempt — but the
// classification keeps call-site context uniform and lets the transport
// boundary collapse any remote failure into a single sentinel.
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Client", "Execute", "post query")
//	errors.WrapInvalid(err, "Config", "Validate", "endpoint check")
//	errors.WrapFatal(err, "Server", "Start", "bind diagnostics port")
//
// # Standard Error Variables
//
// Pre-defined error variables cover the adapter's failure taxonomy:
//
//   - ErrRequestFailed: any transport/protocol/decode failure at the
//     GraphQL boundary — the dispatcher maps this to the fixed
//     "Error: [Request failed]" tool result
//   - ErrInvalidConfig, ErrMissingConfig: configuration problems
//   - ErrAlreadyStarted, ErrNotStarted: lifecycle misuse
//   - ErrInvalidArgument: pre-flight tool argument validation
//
// All error types support errors.Is / errors.As through wrapping chains.
package errors
