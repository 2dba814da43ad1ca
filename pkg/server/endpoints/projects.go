package endpoints

import (
	"net/http"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func RegisterProjectsEndpoints(s *server.Server) {
	rec := newRecorder(s)

	// GET /projects - every project with permissions, groups and links
	s.Router.HandleFunc("/projects", handleListProjects(s.Store, rec)).Methods("GET")

	// POST /projects - create a project with a generated API key
	s.Router.HandleFunc("/projects", handleCreateProject(s.Store, rec)).Methods("POST")

	// DELETE /projects/{id} - cascading delete
	s.Router.HandleFunc("/projects/{id}", handleDeleteProject(s.Store, rec)).Methods("DELETE")
}

func handleListProjects(projectsStore store.ProjectsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := projectsStore.ListProjects(r.Context())
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if projects == nil {
			projects = []model.Project{}
		}
		respondWithJSON(w, http.StatusOK, projects)
	}
}

func handleCreateProject(projectsStore store.ProjectsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		project, err := projectsStore.CreateProject(r.Context(), req.Name, req.Description)
		event := audit.ChangeEvent{Operation: audit.OperationCreate, Entity: audit.EntityProject, Name: req.Name}
		if project != nil {
			event.EntityID = project.ID
		}
		rec.change(r, event, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithJSON(w, http.StatusOK, project)
	}
}

func handleDeleteProject(projectsStore store.ProjectsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		err = projectsStore.DeleteProject(r.Context(), id)
		rec.change(r, audit.ChangeEvent{Operation: audit.OperationDelete, Entity: audit.EntityProject, EntityID: id}, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithSuccess(w)
	}
}
