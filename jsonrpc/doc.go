// Package jsonrpc implements a minimal JSON-RPC 2.0 client over HTTP.
//
// A Client is bound to a single endpoint URL. Each Send issues one POST
// carrying {"jsonrpc":"2.0","id":...,"method":...,"params":...} and returns
// the decoded envelope. Protocol-level errors (the "error" member of the
// envelope) are returned inside the Response, not as a Go error; only
// failures that prevent an envelope from being read are returned as a
// *Fault:
//
//   - connection failures and cancelled contexts
//   - HTTP statuses outside 2xx
//   - bodies that are not a JSON-RPC envelope, or answer a different id
//
// Fault.Timeout is set when the failure was a deadline, so callers can tell
// timeouts apart from other transport failures.
//
// A Client is read-only after construction and safe for concurrent use.
package jsonrpc
