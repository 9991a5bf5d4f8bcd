// Package native implements the invocation bridge through which the
// embedded engine calls host functions.
//
// The calling convention is fixed: arguments travel as a contiguous buffer
// of little-endian 4-byte words, the argument count is the buffer length
// divided by 4, and the result is a single 4-byte word. Supported arities
// are 0 through 4; a wider call fails with an explicit unsupported-arity
// error rather than being ignored.
//
// Registry is the signature table behind the bridge. Functions register
// under a namespace ("env", or versioned "env@1.2.0") and have their shape
// checked once, at registration, so a bad callable surfaces immediately
// instead of at the first guest call. Versioned namespaces resolve with the
// usual compatibility rule: same major version, registered minor/patch at
// least the requested one.
package native
