// Package dxdmcp exposes Tridion Docs Delivery (DXD) content over the
// Model Context Protocol.
//
// The module is a thin protocol adapter: a fixed catalogue of GraphQL
// query templates is executed against a DXD content service, and the
// polymorphic responses are flattened into stable JSON strings that an
// MCP client can consume directly.
//
// # Architecture
//
//	┌──────────────┐   stdio    ┌──────────────┐   GraphQL/HTTP   ┌─────────────┐
//	│  MCP client  │ ◄────────► │    dxdmcp    │ ◄──────────────► │ DXD content │
//	│  (AI agent)  │            │   (5 tools)  │   OAuth2 bearer  │   service   │
//	└──────────────┘            └──────────────┘                  └─────────────┘
//
// Each tool call is synchronous and stateless: arguments are bound to
// template variables, the query is executed once (no retry, no cache),
// and the typed result is projected to JSON. Failures never propagate
// to the caller; every tool returns a string, with two fixed error
// shapes reserved for failures:
//
//	"Error: [Request failed]"   transport, protocol or mapping failure
//	"Error: [<message>]"        pre-flight argument/construction failure
//
// Absence of content is not a failure and maps to "{}" or "[]"
// depending on the operation, so callers can tell "no content" from
// "request failed" by payload shape alone.
//
// # Packages
//
//   - dxd: query templates, response types, projector, operation service
//   - graphql: transport client (document + variables + result path)
//   - tools: MCP tool definitions and handlers
//   - server: MCP stdio serving and the diagnostics HTTP endpoint
//   - config: file/env configuration with validation
//   - errors: classified error handling
//   - metric: Prometheus instrumentation
package dxdmcp
