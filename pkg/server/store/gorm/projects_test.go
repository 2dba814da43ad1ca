package gorm

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

func TestCreateProject(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	description := "invoices and payments"
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WithArgs("Billing", description, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	project, err := s.CreateProject(context.Background(), "Billing", &description)
	require.NoError(t, err)

	assert.Equal(t, int64(1), project.ID)
	assert.Equal(t, "Billing", project.Name)
	assert.Len(t, project.APIKey, 36)
	assert.NotNil(t, project.Permissions)
	assert.NotNil(t, project.PermissionGroups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_KeysNeverCollide(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	for i := 1; i <= 2; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "projects"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(i))
		mock.ExpectCommit()
	}

	first, err := s.CreateProject(context.Background(), "Billing", nil)
	require.NoError(t, err)
	second, err := s.CreateProject(context.Background(), "Billing", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.APIKey, second.APIKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).WillReturnError(errors.New("duplicate key value"))
	mock.ExpectRollback()

	project, err := s.CreateProject(context.Background(), "Billing", nil)
	assert.Nil(t, project)
	assert.EqualError(t, err, "duplicate key value")
}

func TestListProjects(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery(`SELECT \* FROM "projects" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "api_key"}).
			AddRow(1, "Billing", nil, "key-1").
			AddRow(2, "Empty", "nothing here", "key-2"))
	mock.ExpectQuery(`SELECT \* FROM "permissions" WHERE "permissions"."project_id" IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "key", "description"}).
			AddRow(1, 1, "invoice.read", nil))
	mock.ExpectQuery(`SELECT \* FROM "permission_groups" WHERE "permission_groups"."project_id" IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name"}).
			AddRow(1, 1, "Admins"))
	mock.ExpectQuery(`SELECT \* FROM "group_permissions" WHERE "group_permissions"."group_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "permission_id", "enabled"}).
			AddRow(1, 1, 1, true))

	projects, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	billing := projects[0]
	require.Len(t, billing.Permissions, 1)
	assert.Equal(t, "invoice.read", billing.Permissions[0].Key)
	require.Len(t, billing.PermissionGroups, 1)
	require.Len(t, billing.PermissionGroups[0].GroupPermissions, 1)
	assert.True(t, billing.PermissionGroups[0].GroupPermissions[0].Enabled)

	empty := projects[1]
	assert.NotNil(t, empty.Permissions)
	assert.Empty(t, empty.Permissions)
	assert.NotNil(t, empty.PermissionGroups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindProjectByName_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE name = \$1`).
		WithArgs("Missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	project, err := s.FindProjectByName(context.Background(), "Missing")
	assert.Nil(t, project)
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestDeleteProject_CascadeOrder(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "permissions" WHERE project_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	mock.ExpectQuery(`SELECT (.+) FROM "permission_groups" WHERE project_id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "group_permissions" WHERE group_id IN ($1)`)).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "group_permissions" WHERE permission_id IN ($1,$2)`)).
		WithArgs(11, 12).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "permissions" WHERE project_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "permission_groups" WHERE project_id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.DeleteProject(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_SkipsEmptyLinkPasses(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "permissions" WHERE project_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "permission_groups" WHERE project_id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "permissions" WHERE project_id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "permission_groups" WHERE project_id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := s.DeleteProject(context.Background(), 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewProjectsStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "permissions" WHERE project_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "permission_groups" WHERE project_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "group_permissions" WHERE permission_id IN ($1)`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "permissions" WHERE project_id = $1`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := s.DeleteProject(context.Background(), 1)
	assert.EqualError(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
