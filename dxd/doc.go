// Package dxd contains the adapter core: the fixed catalogue of GraphQL
// query templates, the typed response model for the DXD "Ish" schema, the
// projector that flattens polymorphic results into stable JSON, and the
// operation service enforcing the fail-soft string contract.
//
// Every operation is synchronous and stateless. The only two error
// strings an operation can ever return are:
//
//	"Error: [Request failed]"   the query was issued and something failed
//	"Error: [<message>]"        the call never left the adapter
//
// Absence of content is not an error: operations return "{}" or "[]"
// so callers can distinguish "no content" from "request failed" by
// payload shape alone.
package dxd
