package endpoints

import (
	"github.com/sevy33/permissions-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterProjectsEndpoints(srv)
	RegisterPermissionsEndpoints(srv)
	RegisterGroupsEndpoints(srv)
	RegisterExportEndpoints(srv)
}

func newRecorder(srv *server.Server) *recorder {
	return &recorder{log: srv.Log, metrics: srv.Metrics}
}
