package console

import (
	"context"
	"fmt"
)

// Target is the kind of entity a pending confirmation would delete
type Target int

const (
	TargetProject Target = iota
	TargetGroup
	TargetPermission
)

// Confirmation is a delete waiting for the operator's answer
type Confirmation struct {
	Target Target
	ID     int64
	Prompt string
}

// RequestDeleteProject asks for confirmation before deleting a project.
// Nothing is sent to the server until Confirm.
func (vm *ViewModel) RequestDeleteProject(id int64) {
	vm.pending = &Confirmation{
		Target: TargetProject,
		ID:     id,
		Prompt: "Are you sure you want to delete this project? This will delete all associated permissions and groups.",
	}
}

func (vm *ViewModel) RequestDeleteGroup(id int64) {
	vm.pending = &Confirmation{
		Target: TargetGroup,
		ID:     id,
		Prompt: "Are you sure you want to delete this group?",
	}
}

func (vm *ViewModel) RequestDeletePermission(id int64) {
	vm.pending = &Confirmation{
		Target: TargetPermission,
		ID:     id,
		Prompt: "Are you sure you want to delete this permission?",
	}
}

// Pending returns the confirmation awaiting an answer, or nil
func (vm *ViewModel) Pending() *Confirmation {
	return vm.pending
}

// Dismiss drops the pending confirmation without deleting anything
func (vm *ViewModel) Dismiss() {
	vm.pending = nil
}

// Confirm performs the pending delete. Deleting the selected project
// clears the selection; deleting the permission under edit ends the edit.
func (vm *ViewModel) Confirm(ctx context.Context) error {
	c := vm.pending
	if c == nil {
		return nil
	}
	vm.pending = nil

	var err error
	switch c.Target {
	case TargetProject:
		err = vm.api.DeleteProject(ctx, c.ID)
	case TargetGroup:
		err = vm.api.DeleteGroup(ctx, c.ID)
	case TargetPermission:
		err = vm.api.DeletePermission(ctx, c.ID)
	default:
		err = fmt.Errorf("unknown delete target %d", c.Target)
	}
	if err != nil {
		return vm.fail(fmt.Errorf("deleting: %w", err))
	}

	switch c.Target {
	case TargetProject:
		if id, ok := vm.SelectedProjectID(); ok && id == c.ID {
			vm.clearSelection()
		}
	case TargetPermission:
		if id, ok := vm.EditingID(); ok && id == c.ID {
			vm.CancelEdit()
		}
	}
	return vm.reload(ctx)
}
