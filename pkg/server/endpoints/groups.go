package endpoints

import (
	"net/http"

	"github.com/sevy33/permissions-in-go/pkg/audit"
	"github.com/sevy33/permissions-in-go/pkg/server"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// CreateGroupRequest is the body of POST /projects/{projectId}/groups
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// SetGroupPermissionRequest is the body of POST /groups/{groupId}/permissions
type SetGroupPermissionRequest struct {
	PermissionID int64 `json:"permissionId"`
	Enabled      bool  `json:"enabled"`
}

func RegisterGroupsEndpoints(s *server.Server) {
	rec := newRecorder(s)

	s.Router.HandleFunc("/projects/{projectId}/groups", handleCreateGroup(s.Store, rec)).Methods("POST")

	// POST /groups/{groupId}/permissions - insert or update the toggle
	s.Router.HandleFunc("/groups/{groupId}/permissions", handleSetGroupPermission(s.Store, rec)).Methods("POST")

	s.Router.HandleFunc("/groups/{id}", handleDeleteGroup(s.Store, rec)).Methods("DELETE")
}

func handleCreateGroup(groupsStore store.GroupsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectId")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		var req CreateGroupRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if req.Name == "" {
			respondWithError(w, http.StatusBadRequest, "Name is required")
			return
		}

		group, err := groupsStore.CreateGroup(r.Context(), projectID, req.Name)
		event := audit.ChangeEvent{Operation: audit.OperationCreate, Entity: audit.EntityGroup, ProjectID: projectID, Name: req.Name}
		if group != nil {
			event.EntityID = group.ID
		}
		rec.change(r, event, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithJSON(w, http.StatusOK, group)
	}
}

func handleSetGroupPermission(groupsStore store.GroupsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, err := pathID(r, "groupId")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		var req SetGroupPermissionRequest
		if err := decodeBody(r, &req); err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}
		if req.PermissionID == 0 {
			respondWithError(w, http.StatusBadRequest, "Permission ID is required")
			return
		}

		err = groupsStore.SetGroupPermission(r.Context(), groupID, req.PermissionID, req.Enabled)
		rec.change(r, audit.ChangeEvent{Operation: audit.OperationToggle, Entity: audit.EntityGroupPermission, EntityID: groupID}, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithSuccess(w)
	}
}

func handleDeleteGroup(groupsStore store.GroupsStore, rec *recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		err = groupsStore.DeleteGroup(r.Context(), id)
		rec.change(r, audit.ChangeEvent{Operation: audit.OperationDelete, Entity: audit.EntityGroup, EntityID: id}, err)
		if err != nil {
			respondWithStoreError(w, r, rec.log, err)
			return
		}

		respondWithSuccess(w)
	}
}
