package console

import (
	"context"
	"fmt"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// API is the subset of the permissions HTTP API the console uses.
// *client.Client satisfies it.
type API interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name string, description *string) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) error
	CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error)
	UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error)
	DeletePermission(ctx context.Context, id int64) error
	CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error)
	SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error
	DeleteGroup(ctx context.Context, id int64) error
}

// ViewModel is the mutable UI state. The exported string fields are bound
// directly to input widgets.
type ViewModel struct {
	api API

	projects   []model.Project
	selectedID *int64

	ShowAddProject bool
	NewProjectName string
	NewProjectDesc string

	NewPermissionKey  string
	NewPermissionDesc string

	NewGroupName string

	editingID *int64
	EditKey   string
	EditDesc  string

	pending *Confirmation
	err     error
}

func New(api API) *ViewModel {
	return &ViewModel{api: api}
}

// Load replaces the project list with the server's current state
func (vm *ViewModel) Load(ctx context.Context) error {
	projects, err := vm.api.ListProjects(ctx)
	if err != nil {
		return vm.fail(fmt.Errorf("loading projects: %w", err))
	}
	for i := range projects {
		projects[i].Normalize()
	}
	vm.projects = projects
	return nil
}

func (vm *ViewModel) Projects() []model.Project {
	return vm.projects
}

// Err is the last failure, or nil if the last action succeeded
func (vm *ViewModel) Err() error {
	return vm.err
}

func (vm *ViewModel) ClearErr() {
	vm.err = nil
}

func (vm *ViewModel) SelectedProjectID() (int64, bool) {
	if vm.selectedID == nil {
		return 0, false
	}
	return *vm.selectedID, true
}

// SelectedProject returns nil when nothing is selected or the selected
// project is no longer in the list.
func (vm *ViewModel) SelectedProject() *model.Project {
	if vm.selectedID == nil {
		return nil
	}
	for i := range vm.projects {
		if vm.projects[i].ID == *vm.selectedID {
			return &vm.projects[i]
		}
	}
	return nil
}

// SelectProject makes id the current project and resets the permission,
// group and edit forms.
func (vm *ViewModel) SelectProject(id int64) {
	vm.selectedID = &id
	vm.NewPermissionKey = ""
	vm.NewPermissionDesc = ""
	vm.NewGroupName = ""
	vm.CancelEdit()
}

func (vm *ViewModel) clearSelection() {
	vm.selectedID = nil
	vm.CancelEdit()
}

// AddProject creates a project from the new-project form. An empty name
// does nothing.
func (vm *ViewModel) AddProject(ctx context.Context) error {
	if vm.NewProjectName == "" {
		return nil
	}
	if _, err := vm.api.CreateProject(ctx, vm.NewProjectName, optional(vm.NewProjectDesc)); err != nil {
		return vm.fail(fmt.Errorf("creating project: %w", err))
	}
	vm.NewProjectName = ""
	vm.NewProjectDesc = ""
	vm.ShowAddProject = false
	return vm.reload(ctx)
}

// AddPermission creates a permission in the selected project
func (vm *ViewModel) AddPermission(ctx context.Context) error {
	projectID, ok := vm.SelectedProjectID()
	if !ok || vm.NewPermissionKey == "" {
		return nil
	}
	if _, err := vm.api.CreatePermission(ctx, projectID, vm.NewPermissionKey, optional(vm.NewPermissionDesc)); err != nil {
		return vm.fail(fmt.Errorf("creating permission: %w", err))
	}
	vm.NewPermissionKey = ""
	vm.NewPermissionDesc = ""
	return vm.reload(ctx)
}

// AddGroup creates a group in the selected project
func (vm *ViewModel) AddGroup(ctx context.Context) error {
	projectID, ok := vm.SelectedProjectID()
	if !ok || vm.NewGroupName == "" {
		return nil
	}
	if _, err := vm.api.CreateGroup(ctx, projectID, vm.NewGroupName); err != nil {
		return vm.fail(fmt.Errorf("creating group: %w", err))
	}
	vm.NewGroupName = ""
	return vm.reload(ctx)
}

// EditingID returns the permission being edited, if any
func (vm *ViewModel) EditingID() (int64, bool) {
	if vm.editingID == nil {
		return 0, false
	}
	return *vm.editingID, true
}

// StartEdit copies p into the edit fields. Starting a new edit abandons
// any other one.
func (vm *ViewModel) StartEdit(p model.Permission) {
	id := p.ID
	vm.editingID = &id
	vm.EditKey = p.Key
	vm.EditDesc = ""
	if p.Description != nil {
		vm.EditDesc = *p.Description
	}
}

func (vm *ViewModel) CancelEdit() {
	vm.editingID = nil
	vm.EditKey = ""
	vm.EditDesc = ""
}

// SaveEdit writes the edit fields back. The edit stays open on failure.
func (vm *ViewModel) SaveEdit(ctx context.Context) error {
	id, ok := vm.EditingID()
	if !ok {
		return nil
	}
	if _, err := vm.api.UpdatePermission(ctx, id, vm.EditKey, optional(vm.EditDesc)); err != nil {
		return vm.fail(fmt.Errorf("updating permission: %w", err))
	}
	vm.CancelEdit()
	return vm.reload(ctx)
}

// TogglePermission sets whether groupID grants permissionID
func (vm *ViewModel) TogglePermission(ctx context.Context, groupID, permissionID int64, enabled bool) error {
	if err := vm.api.SetGroupPermission(ctx, groupID, permissionID, enabled); err != nil {
		return vm.fail(fmt.Errorf("updating group permission: %w", err))
	}
	return vm.reload(ctx)
}

// IsPermissionEnabled reports whether g has an enabled link to
// permissionID. A missing link counts as disabled.
func IsPermissionEnabled(g model.PermissionGroup, permissionID int64) bool {
	return g.IsPermissionEnabled(permissionID)
}

func (vm *ViewModel) reload(ctx context.Context) error {
	vm.err = nil
	return vm.Load(ctx)
}

func (vm *ViewModel) fail(err error) error {
	vm.err = err
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
