// Package identity describes who made an admin request.
//
// The token gate stores an Identity built from the verified token claims
// in the request context. Handlers read it back when writing audit events:
//
//	id := identity.FromRequest(r)
//	event.Actor = id.Subject
//	event.ClientIP = id.RemoteAddr()
//
// Requests that passed no gate (the gate is disabled or the path is public)
// still get an Identity carrying only the remote address.
package identity
