// Package server provides the HTTP server for the permissions API.
//
// The Server struct holds the router, the stores, configuration and the
// shared logger and metrics. Routes are registered by the endpoints
// subpackage:
//
//	srv := server.NewServer(db, cfg, log, "0.0.0.0", "8080")
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
//	    log.Fatal(err)
//	}
//
// Requests pass through access logging, optional CORS, Prometheus
// instrumentation and the admin token gate before reaching a handler.
package server
