// Package tui is a terminal front end for the permissions console.
//
// The left pane lists projects. The right pane shows the selected
// project's permissions as rows and its groups as columns, with a check
// mark wherever the group grants the permission. Every API call is made
// synchronously from Update through the console.ViewModel, so the view
// never observes a half-applied change.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevy33/permissions-in-go/pkg/console"
	"github.com/sevy33/permissions-in-go/pkg/model"
)

// requestTimeout bounds each API call made from a key press
const requestTimeout = 10 * time.Second

type focus int

const (
	focusProjects focus = iota
	focusDetail
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

type formKind int

const (
	formProject formKind = iota
	formPermission
	formGroup
	formEdit
)

// reloadMsg asks Update to refresh the project list
type reloadMsg struct{}

type Model struct {
	vm     *console.ViewModel
	keys   KeyMap
	styles styles

	focus         focus
	mode          mode
	projectCursor int
	permCursor    int
	groupCursor   int

	form     formKind
	inputs   []textinput.Model
	fieldIdx int
	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(vm *console.ViewModel) Model {
	return Model{
		vm:     vm,
		keys:   DefaultKeyMap,
		styles: newStyles(DefaultTheme),
	}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return reloadMsg{} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadMsg:
		m.call(m.vm.Load)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.handleFormKeys(msg)
		case modeConfirm:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.vm.ClearErr()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		if m.focus == focusDetail && m.groupCursor > 0 {
			m.groupCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if p := m.vm.SelectedProject(); m.focus == focusDetail && p != nil && m.groupCursor < len(p.PermissionGroups)-1 {
			m.groupCursor++
		}

	case key.Matches(msg, m.keys.FocusToggle):
		if m.focus == focusProjects && m.vm.SelectedProject() != nil {
			m.focus = focusDetail
		} else {
			m.focus = focusProjects
		}

	case key.Matches(msg, m.keys.Select):
		if m.focus == focusProjects {
			if p := m.cursorProject(); p != nil {
				m.vm.SelectProject(p.ID)
				m.permCursor, m.groupCursor = 0, 0
				m.focus = focusDetail
			}
		}

	case key.Matches(msg, m.keys.NewProject):
		m.vm.ShowAddProject = true
		m.openForm(formProject, field("Name", m.vm.NewProjectName), field("Description", m.vm.NewProjectDesc))
	case key.Matches(msg, m.keys.NewPermission):
		if m.vm.SelectedProject() != nil {
			m.openForm(formPermission, field("Key", m.vm.NewPermissionKey), field("Description", m.vm.NewPermissionDesc))
		}
	case key.Matches(msg, m.keys.NewGroup):
		if m.vm.SelectedProject() != nil {
			m.openForm(formGroup, field("Name", m.vm.NewGroupName))
		}
	case key.Matches(msg, m.keys.Edit):
		if perm := m.cursorPermission(); perm != nil {
			m.vm.StartEdit(*perm)
			m.openForm(formEdit, field("Key", m.vm.EditKey), field("Description", m.vm.EditDesc))
		}

	case key.Matches(msg, m.keys.Toggle):
		perm, group := m.cursorPermission(), m.cursorGroup()
		if perm != nil && group != nil {
			enabled := !console.IsPermissionEnabled(*group, perm.ID)
			m.call(func(ctx context.Context) error {
				return m.vm.TogglePermission(ctx, group.ID, perm.ID, enabled)
			})
		}

	case key.Matches(msg, m.keys.Delete):
		if m.focus == focusProjects {
			if p := m.cursorProject(); p != nil {
				m.vm.RequestDeleteProject(p.ID)
				m.mode = modeConfirm
			}
		} else if perm := m.cursorPermission(); perm != nil {
			m.vm.RequestDeletePermission(perm.ID)
			m.mode = modeConfirm
		}
	case key.Matches(msg, m.keys.DeleteGroup):
		if group := m.cursorGroup(); m.focus == focusDetail && group != nil {
			m.vm.RequestDeleteGroup(group.ID)
			m.mode = modeConfirm
		}

	case key.Matches(msg, m.keys.ShowKey):
		if p := m.vm.SelectedProject(); p != nil {
			m.status = "API key for " + p.Name + ": " + p.APIKey
		}
	case key.Matches(msg, m.keys.Reload):
		m.call(m.vm.Load)
	}

	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.mode = modeBrowse
		m.call(m.vm.Confirm)
		if m.vm.SelectedProject() == nil {
			m.focus = focusProjects
		}
	case key.Matches(msg, m.keys.No):
		m.vm.Dismiss()
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		if m.form == formEdit {
			m.vm.CancelEdit()
		}
		if m.form == formProject {
			m.vm.ShowAddProject = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.inputs[m.fieldIdx].Blur()
		if msg.String() == "shift+tab" {
			m.fieldIdx = (m.fieldIdx + len(m.inputs) - 1) % len(m.inputs)
		} else {
			m.fieldIdx = (m.fieldIdx + 1) % len(m.inputs)
		}
		return m, m.inputs[m.fieldIdx].Focus()

	case key.Matches(msg, m.keys.Submit):
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.fieldIdx], cmd = m.inputs[m.fieldIdx].Update(msg)
	return m, cmd
}

// submitForm copies the inputs into the view model and runs the matching
// action. The form stays open with its contents if the call fails.
func (m *Model) submitForm() {
	value := func(i int) string {
		if i < len(m.inputs) {
			return m.inputs[i].Value()
		}
		return ""
	}

	var action func(context.Context) error
	switch m.form {
	case formProject:
		m.vm.NewProjectName, m.vm.NewProjectDesc = value(0), value(1)
		action = m.vm.AddProject
	case formPermission:
		m.vm.NewPermissionKey, m.vm.NewPermissionDesc = value(0), value(1)
		action = m.vm.AddPermission
	case formGroup:
		m.vm.NewGroupName = value(0)
		action = m.vm.AddGroup
	case formEdit:
		m.vm.EditKey, m.vm.EditDesc = value(0), value(1)
		action = m.vm.SaveEdit
	}

	if value(0) == "" {
		return
	}
	if m.call(action) {
		m.closeForm()
	}
}

// call runs fn with a bounded context and reports whether it succeeded.
// Failures are shown through the view model's Err.
func (m *Model) call(fn func(context.Context) error) bool {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	err := fn(ctx)
	m.clampCursors()
	return err == nil
}

func field(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = placeholder + ": "
	in.CharLimit = 255
	in.SetValue(value)
	return in
}

func (m *Model) openForm(kind formKind, inputs ...textinput.Model) {
	m.mode = modeForm
	m.form = kind
	m.inputs = inputs
	m.fieldIdx = 0
	m.inputs[0].Focus()
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.inputs = nil
	m.fieldIdx = 0
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusProjects {
		m.projectCursor += delta
	} else {
		m.permCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.projectCursor = clamp(m.projectCursor, len(m.vm.Projects()))
	if p := m.vm.SelectedProject(); p != nil {
		m.permCursor = clamp(m.permCursor, len(p.Permissions))
		m.groupCursor = clamp(m.groupCursor, len(p.PermissionGroups))
	} else {
		m.permCursor, m.groupCursor = 0, 0
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m Model) cursorProject() *model.Project {
	projects := m.vm.Projects()
	if m.projectCursor < len(projects) {
		return &projects[m.projectCursor]
	}
	return nil
}

func (m Model) cursorPermission() *model.Permission {
	p := m.vm.SelectedProject()
	if m.focus != focusDetail || p == nil || m.permCursor >= len(p.Permissions) {
		return nil
	}
	return &p.Permissions[m.permCursor]
}

func (m Model) cursorGroup() *model.PermissionGroup {
	p := m.vm.SelectedProject()
	if p == nil || m.groupCursor >= len(p.PermissionGroups) {
		return nil
	}
	return &p.PermissionGroups[m.groupCursor]
}

// Run starts the console full screen and blocks until the user quits
func Run(vm *console.ViewModel) error {
	_, err := tea.NewProgram(NewModel(vm), tea.WithAltScreen()).Run()
	return err
}
