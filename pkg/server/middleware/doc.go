// Package middleware provides HTTP middleware for the permctl server.
//
// TokenGate guards the administration routes with HS256 bearer tokens
// when an admin token secret is configured. Health, metrics and the
// export API stay public so that consuming services only need an API key.
package middleware
