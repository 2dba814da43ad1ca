package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/export"
	"github.com/sevy33/permissions-in-go/pkg/observability"
	"github.com/sevy33/permissions-in-go/pkg/server"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// RegisterExportEndpoints registers the read-only export API. These routes
// are reachable without an admin token.
func RegisterExportEndpoints(s *server.Server) {
	rec := newRecorder(s)

	s.Router.HandleFunc("/export/all", handleExportAll(s.Store, rec)).Methods("GET")
	s.Router.HandleFunc("/export/project/{apiKey}", handleExportProject(s.Store, rec)).Methods("GET")
}

func handleExportAll(exportStore store.ExportStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := exportStore.ExportAll(r.Context())
		if err != nil {
			rec.metrics.ObserveExport(observability.ExportError)
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		rec.export(r, audit.ExportEvent{}, observability.ExportFound)
		respondWithJSON(w, http.StatusOK, export.FromProjects(projects))
	}
}

func handleExportProject(exportStore store.ExportStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := mux.Vars(r)["apiKey"]

		project, err := exportStore.ExportByAPIKey(r.Context(), apiKey)
		if err != nil {
			if errors.Is(err, store.ErrProjectNotFound) {
				rec.export(r, audit.ExportEvent{APIKey: apiKey}, observability.ExportNotFound)
				respondWithError(w, http.StatusNotFound, "Project not found")
				return
			}
			rec.metrics.ObserveExport(observability.ExportError)
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		rec.export(r, audit.ExportEvent{APIKey: apiKey, ProjectID: project.ID, Found: true}, observability.ExportFound)
		respondWithJSON(w, http.StatusOK, export.FromProject(*project))
	}
}
