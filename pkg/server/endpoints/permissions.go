package endpoints

import (
	"net/http"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/server"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// CreatePermissionRequest is the body of POST /permissions
type CreatePermissionRequest struct {
	ProjectID   int64   `json:"projectId"`
	Key         string  `json:"key"`
	Description *string `json:"description"`
}

// UpdatePermissionRequest is the body of PUT /permissions/{id}
type UpdatePermissionRequest struct {
	Key         string  `json:"key"`
	Description *string `json:"description"`
}

func RegisterPermissionsEndpoints(s *server.Server) {
	rec := newRecorder(s)

	s.Router.HandleFunc("/permissions", handleCreatePermission(s.Store, rec)).Methods("POST")
	s.Router.HandleFunc("/permissions/{id}", handleUpdatePermission(s.Store, rec)).Methods("PUT")
	s.Router.HandleFunc("/permissions/{id}", handleDeletePermission(s.Store, rec)).Methods("DELETE")
}

func handleCreatePermission(permissionsStore store.PermissionsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePermissionRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if req.ProjectID == 0 || req.Key == "" {
			respondWithError(w, http.StatusBadRequest, "Project ID and Key are required")
			return
		}

		permission, err := permissionsStore.CreatePermission(r.Context(), req.ProjectID, req.Key, req.Description)
		event := audit.ChangeEvent{Operation: audit.OperationCreate, Entity: audit.EntityPermission, ProjectID: req.ProjectID, Name: req.Key}
		if permission != nil {
			event.EntityID = permission.ID
		}
		rec.change(r, event, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithJSON(w, http.StatusOK, permission)
	}
}

func handleUpdatePermission(permissionsStore store.PermissionsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		var req UpdatePermissionRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if req.Key == "" {
			respondWithError(w, http.StatusBadRequest, "Key is required")
			return
		}

		permission, err := permissionsStore.UpdatePermission(r.Context(), id, req.Key, req.Description)
		event := audit.ChangeEvent{Operation: audit.OperationUpdate, Entity: audit.EntityPermission, EntityID: id, Name: req.Key}
		if permission != nil {
			event.ProjectID = permission.ProjectID
		}
		rec.change(r, event, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithJSON(w, http.StatusOK, permission)
	}
}

func handleDeletePermission(permissionsStore store.PermissionsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		err = permissionsStore.DeletePermission(r.Context(), id)
		rec.change(r, audit.ChangeEvent{Operation: audit.OperationDelete, Entity: audit.EntityPermission, EntityID: id}, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithSuccess(w)
	}
}
