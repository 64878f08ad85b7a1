// Package complysdk is a typed Go client for the compliance tracking
// service. Unauthenticated operations (health, login, invitation validation
// and acceptance) hang off Client; everything behind a session token hangs
// off Session.
//
// The request and response types in this package are the wire contract; the
// server handlers encode and decode exactly these shapes.
package complysdk
