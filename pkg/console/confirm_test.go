package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

func TestDeleteRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name    string
		request func(vm *ViewModel)
		want    string
		target  Target
	}{
		{"project", func(vm *ViewModel) { vm.RequestDeleteProject(7) }, "delete project 7", TargetProject},
		{"group", func(vm *ViewModel) { vm.RequestDeleteGroup(7) }, "delete group 7", TargetGroup},
		{"permission", func(vm *ViewModel) { vm.RequestDeletePermission(7) }, "delete permission 7", TargetPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			vm := New(api)

			tt.request(vm)
			require.NotNil(t, vm.Pending())
			assert.Equal(t, tt.target, vm.Pending().Target)
			assert.Contains(t, vm.Pending().Prompt, "Are you sure")
			assert.Empty(t, api.calls)

			require.NoError(t, vm.Confirm(context.Background()))
			assert.Nil(t, vm.Pending())
			assert.Equal(t, []string{tt.want, "list"}, api.calls)
		})
	}
}

func TestDismiss(t *testing.T) {
	api := newFakeAPI()
	vm := New(api)

	vm.RequestDeleteGroup(3)
	vm.Dismiss()
	assert.Nil(t, vm.Pending())

	require.NoError(t, vm.Confirm(context.Background()))
	assert.Empty(t, api.calls)
}

func TestConfirm_DeletingSelectedProjectClearsSelection(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	vm := New(api)
	vm.NewProjectName = "Billing"
	require.NoError(t, vm.AddProject(ctx))
	vm.NewProjectName = "Shipping"
	require.NoError(t, vm.AddProject(ctx))

	billing, shipping := vm.Projects()[0].ID, vm.Projects()[1].ID

	vm.SelectProject(billing)
	vm.RequestDeleteProject(shipping)
	require.NoError(t, vm.Confirm(ctx))
	id, ok := vm.SelectedProjectID()
	require.True(t, ok)
	assert.Equal(t, billing, id)

	vm.RequestDeleteProject(billing)
	require.NoError(t, vm.Confirm(ctx))
	_, ok = vm.SelectedProjectID()
	assert.False(t, ok)
	assert.Empty(t, vm.Projects())
}

func TestConfirm_DeletingEditedPermissionEndsEdit(t *testing.T) {
	vm := New(newFakeAPI())
	vm.StartEdit(model.Permission{ID: 5, Key: "invoice.read"})

	vm.RequestDeletePermission(5)
	require.NoError(t, vm.Confirm(context.Background()))

	_, ok := vm.EditingID()
	assert.False(t, ok)
}

func TestConfirm_Failure(t *testing.T) {
	api := newFakeAPI()
	vm := New(api)
	vm.SelectProject(1)
	api.failNext = errors.New("connection refused")

	vm.RequestDeleteProject(1)
	err := vm.Confirm(context.Background())

	require.Error(t, err)
	assert.Contains(t, vm.Err().Error(), "connection refused")
	assert.Nil(t, vm.Pending())
	_, ok := vm.SelectedProjectID()
	assert.True(t, ok)
}
