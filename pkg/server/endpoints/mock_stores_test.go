package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// MockStore implements store.Store for testing using testify/mock
type MockStore struct {
	mock.Mock
}

var _ store.Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockStore) CreateProject(ctx context.Context, name string, description *string) (*model.Project, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockStore) FindProjectByName(ctx context.Context, name string) (*model.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockStore) DeleteProject(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error) {
	args := m.Called(ctx, projectID, key, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockStore) UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error) {
	args := m.Called(ctx, id, key, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockStore) FindPermissionByKey(ctx context.Context, projectID int64, key string) (*model.Permission, error) {
	args := m.Called(ctx, projectID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Permission), args.Error(1)
}

func (m *MockStore) DeletePermission(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionGroup), args.Error(1)
}

func (m *MockStore) FindGroupByName(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PermissionGroup), args.Error(1)
}

func (m *MockStore) SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error {
	args := m.Called(ctx, groupID, permissionID, enabled)
	return args.Error(0)
}

func (m *MockStore) DeleteGroup(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) ExportAll(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockStore) ExportByAPIKey(ctx context.Context, apiKey string) (*model.Project, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

// Transaction runs fn against the mock itself
func (m *MockStore) Transaction(ctx context.Context, fn func(store.Store) error) error {
	return fn(m)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
