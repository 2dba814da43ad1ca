package console

import (
	"context"
	"fmt"

	"github.com/sevy33/permissions-in-go/pkg/client"
	"github.com/sevy33/permissions-in-go/pkg/model"
)

var _ API = (*client.Client)(nil)

// fakeAPI keeps projects in memory. Setting failNext makes the next
// mutation return that error.
type fakeAPI struct {
	projects []model.Project
	nextID   int64
	calls    []string
	failNext error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1}
}

func (f *fakeAPI) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeAPI) record(format string, args ...interface{}) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeAPI) project(id int64) *model.Project {
	for i := range f.projects {
		if f.projects[i].ID == id {
			return &f.projects[i]
		}
	}
	return nil
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]model.Project, error) {
	f.calls = append(f.calls, "list")
	out := make([]model.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, name string, description *string) (*model.Project, error) {
	if err := f.record("create project %s", name); err != nil {
		return nil, err
	}
	p := model.Project{ID: f.id(), Name: name, Description: description, APIKey: model.NewAPIKey()}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id int64) error {
	if err := f.record("delete project %d", id); err != nil {
		return err
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error) {
	if err := f.record("create permission %d %s", projectID, key); err != nil {
		return nil, err
	}
	perm := model.Permission{ID: f.id(), ProjectID: projectID, Key: key, Description: description}
	p := f.project(projectID)
	p.Permissions = append(p.Permissions, perm)
	return &perm, nil
}

func (f *fakeAPI) UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error) {
	if err := f.record("update permission %d %s", id, key); err != nil {
		return nil, err
	}
	for i := range f.projects {
		for j := range f.projects[i].Permissions {
			perm := &f.projects[i].Permissions[j]
			if perm.ID == id {
				perm.Key = key
				perm.Description = description
				out := *perm
				return &out, nil
			}
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeAPI) DeletePermission(ctx context.Context, id int64) error {
	return f.record("delete permission %d", id)
}

func (f *fakeAPI) CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	if err := f.record("create group %d %s", projectID, name); err != nil {
		return nil, err
	}
	g := model.PermissionGroup{ID: f.id(), ProjectID: projectID, Name: name}
	p := f.project(projectID)
	p.PermissionGroups = append(p.PermissionGroups, g)
	return &g, nil
}

func (f *fakeAPI) SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error {
	return f.record("set %d %d %t", groupID, permissionID, enabled)
}

func (f *fakeAPI) DeleteGroup(ctx context.Context, id int64) error {
	return f.record("delete group %d", id)
}
