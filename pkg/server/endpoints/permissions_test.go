package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

func TestCreatePermission(t *testing.T) {
	t.Run("creates permission", func(t *testing.T) {
		st := NewMockStore()
		st.On("CreatePermission", mock.Anything, int64(1), "invoice.read", strPtr("Read invoices")).
			Return(&model.Permission{ID: 1, ProjectID: 1, Key: "invoice.read", Description: strPtr("Read invoices")}, nil)

		w := doRequest(newTestServer(st, nil, nil), "POST", "/permissions",
			`{"projectId":1,"key":"invoice.read","description":"Read invoices"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"projectId":1,"key":"invoice.read","description":"Read invoices"}`, w.Body.String())
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing project", body: `{"key":"invoice.read"}`},
		{name: "missing key", body: `{"projectId":1}`},
		{name: "empty key", body: `{"projectId":1,"key":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewMockStore()

			w := doRequest(newTestServer(st, nil, nil), "POST", "/permissions", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Project ID and Key are required"}`, w.Body.String())
			st.AssertNotCalled(t, "CreatePermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("duplicate key surfaces as store failure", func(t *testing.T) {
		st := NewMockStore()
		st.On("CreatePermission", mock.Anything, int64(1), "invoice.read", (*string)(nil)).
			Return(nil, errors.New(`duplicate key value violates unique constraint "permissions_project_id_key_key"`))

		w := doRequest(newTestServer(st, nil, nil), "POST", "/permissions", `{"projectId":1,"key":"invoice.read"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdatePermission(t *testing.T) {
	t.Run("overwrites key and description", func(t *testing.T) {
		st := NewMockStore()
		st.On("UpdatePermission", mock.Anything, int64(4), "invoice.write", (*string)(nil)).
			Return(&model.Permission{ID: 4, ProjectID: 1, Key: "invoice.write"}, nil)

		w := doRequest(newTestServer(st, nil, nil), "PUT", "/permissions/4", `{"key":"invoice.write"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":4,"projectId":1,"key":"invoice.write","description":null}`, w.Body.String())
	})

	t.Run("unknown id", func(t *testing.T) {
		st := NewMockStore()
		st.On("UpdatePermission", mock.Anything, int64(99), "x", (*string)(nil)).
			Return(nil, store.ErrPermissionNotFound)

		w := doRequest(newTestServer(st, nil, nil), "PUT", "/permissions/99", `{"key":"x"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Permission not found"}`, w.Body.String())
	})

	t.Run("empty key", func(t *testing.T) {
		w := doRequest(newTestServer(NewMockStore(), nil, nil), "PUT", "/permissions/4", `{"key":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Key is required"}`, w.Body.String())
	})
}

func TestDeletePermission(t *testing.T) {
	st := NewMockStore()
	st.On("DeletePermission", mock.Anything, int64(1)).Return(nil)

	w := doRequest(newTestServer(st, nil, nil), "DELETE", "/permissions/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	st.AssertExpectations(t)
}
