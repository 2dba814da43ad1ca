package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

func TestListProjects(t *testing.T) {
	t.Run("returns nested projects", func(t *testing.T) {
		st := NewMockStore()
		st.On("ListProjects", mock.Anything).Return([]model.Project{
			{
				ID:     1,
				Name:   "Billing",
				APIKey: "k1",
				Permissions: []model.Permission{
					{ID: 1, ProjectID: 1, Key: "invoice.read", Description: strPtr("Read invoices")},
				},
				PermissionGroups: []model.PermissionGroup{
					{ID: 1, ProjectID: 1, Name: "Admins", GroupPermissions: []model.GroupPermission{
						{ID: 1, GroupID: 1, PermissionID: 1, Enabled: true},
					}},
				},
			},
		}, nil)

		w := doRequest(newTestServer(st, nil, nil), "GET", "/projects", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "k1", body[0]["apiKey"])
		groups := body[0]["permissionGroups"].([]interface{})
		links := groups[0].(map[string]interface{})["groupPermissions"].([]interface{})
		assert.Equal(t, true, links[0].(map[string]interface{})["enabled"])
	})

	t.Run("empty list encodes as array", func(t *testing.T) {
		st := NewMockStore()
		st.On("ListProjects", mock.Anything).Return(nil, nil)

		w := doRequest(newTestServer(st, nil, nil), "GET", "/projects", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store failure is 500", func(t *testing.T) {
		st := NewMockStore()
		st.On("ListProjects", mock.Anything).Return(nil, errors.New("connection refused"))

		w := doRequest(newTestServer(st, nil, nil), "GET", "/projects", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"connection refused"}`, w.Body.String())
	})
}

func TestCreateProject(t *testing.T) {
	t.Run("creates project with api key", func(t *testing.T) {
		st := NewMockStore()
		created := &model.Project{
			ID:               3,
			Name:             "Billing",
			APIKey:           "6f1c-key",
			CreatedAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			Permissions:      []model.Permission{},
			PermissionGroups: []model.PermissionGroup{},
		}
		st.On("CreateProject", mock.Anything, "Billing", (*string)(nil)).Return(created, nil)

		w := doRequest(newTestServer(st, nil, nil), "POST", "/projects", `{"name":"Billing"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"id": 3,
			"name": "Billing",
			"description": null,
			"apiKey": "6f1c-key",
			"createdAt": "2025-01-01T00:00:00Z",
			"permissions": [],
			"permissionGroups": []
		}`, w.Body.String())
		st.AssertExpectations(t)
	})

	t.Run("passes description", func(t *testing.T) {
		st := NewMockStore()
		st.On("CreateProject", mock.Anything, "Billing", strPtr("Invoices")).
			Return(&model.Project{ID: 1, Name: "Billing", Description: strPtr("Invoices")}, nil)

		w := doRequest(newTestServer(st, nil, nil), "POST", "/projects", `{"name":"Billing","description":"Invoices"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		st.AssertExpectations(t)
	})

	t.Run("name is required", func(t *testing.T) {
		st := NewMockStore()

		w := doRequest(newTestServer(st, nil, nil), "POST", "/projects", `{"description":"no name"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Name is required"}`, w.Body.String())
		st.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(newTestServer(NewMockStore(), nil, nil), "POST", "/projects", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid JSON body"}`, w.Body.String())
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("cascades and reports success", func(t *testing.T) {
		st := NewMockStore()
		st.On("DeleteProject", mock.Anything, int64(5)).Return(nil)

		w := doRequest(newTestServer(st, nil, nil), "DELETE", "/projects/5", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
		st.AssertExpectations(t)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := doRequest(newTestServer(NewMockStore(), nil, nil), "DELETE", "/projects/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid id: abc"}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		st := NewMockStore()
		st.On("DeleteProject", mock.Anything, int64(5)).Return(errors.New("deadlock detected"))

		w := doRequest(newTestServer(st, nil, nil), "DELETE", "/projects/5", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"deadlock detected"}`, w.Body.String())
	})
}
