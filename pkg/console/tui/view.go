package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevy33/permissions-in-go/pkg/console"
)

const projectPaneWidth = 28

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderProjects(), m.renderDetail())

	sections := []string{m.styles.header.Render("Permissions"), body}
	switch m.mode {
	case modeForm:
		sections = append(sections, m.renderForm())
	case modeConfirm:
		sections = append(sections, m.renderConfirm())
	}
	if err := m.vm.Err(); err != nil {
		sections = append(sections, m.styles.err.Render("Error: "+err.Error()))
	}
	if m.status != "" {
		sections = append(sections, m.styles.normal.Render(m.status))
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderProjects() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Projects"))
	b.WriteString("\n")

	projects := m.vm.Projects()
	if len(projects) == 0 {
		b.WriteString(m.styles.faint.Render("No projects. Press n to add one."))
	}
	selectedID, hasSelection := m.vm.SelectedProjectID()
	for i, p := range projects {
		marker := "  "
		if hasSelection && p.ID == selectedID {
			marker = "▸ "
		}
		line := truncate(marker+p.Name, projectPaneWidth-2)
		if i == m.projectCursor && m.focus == focusProjects {
			line = m.styles.selected.Render(line)
		} else {
			line = m.styles.normal.Render(line)
		}
		b.WriteString(line)
		if i < len(projects)-1 {
			b.WriteString("\n")
		}
	}

	style := m.styles.pane
	if m.focus == focusProjects {
		style = m.styles.focused
	}
	return style.Width(projectPaneWidth).Render(b.String())
}

func (m Model) renderDetail() string {
	style := m.styles.pane
	if m.focus == focusDetail {
		style = m.styles.focused
	}
	if w := m.width - projectPaneWidth - 4; w > 20 {
		style = style.Width(w)
	}

	p := m.vm.SelectedProject()
	if p == nil {
		return style.Render(m.styles.faint.Render("Select a project with Enter."))
	}

	var b strings.Builder
	b.WriteString(m.styles.header.Render(p.Name))
	if p.Description != nil && *p.Description != "" {
		b.WriteString("  " + m.styles.faint.Render(*p.Description))
	}
	b.WriteString("\n\n")

	if len(p.Permissions) == 0 {
		b.WriteString(m.styles.faint.Render("No permissions. Press p to add one."))
		return style.Render(b.String())
	}

	keyWidth := 3
	for _, perm := range p.Permissions {
		if len(perm.Key) > keyWidth {
			keyWidth = len(perm.Key)
		}
	}

	header := fmt.Sprintf("%-*s", keyWidth, "Key")
	for i, g := range p.PermissionGroups {
		name := " " + g.Name + " "
		if i == m.groupCursor && m.focus == focusDetail {
			name = m.styles.selected.Render(name)
		}
		header += " " + name
	}
	b.WriteString(m.styles.faint.Render(header) + "\n")

	editingID, editing := m.vm.EditingID()
	for row, perm := range p.Permissions {
		label := fmt.Sprintf("%-*s", keyWidth, perm.Key)
		if editing && perm.ID == editingID {
			label = m.styles.prompt.Render(label)
		} else if row == m.permCursor && m.focus == focusDetail {
			label = m.styles.selected.Render(label)
		}

		line := label
		for _, g := range p.PermissionGroups {
			cell := m.styles.disabled.Render("[ ]")
			if console.IsPermissionEnabled(g, perm.ID) {
				cell = m.styles.enabled.Render("[x]")
			}
			line += " " + lipgloss.PlaceHorizontal(len(g.Name)+2, lipgloss.Center, cell)
		}
		if perm.Description != nil && *perm.Description != "" {
			line += "  " + m.styles.faint.Render(*perm.Description)
		}
		b.WriteString(line)
		if row < len(p.Permissions)-1 {
			b.WriteString("\n")
		}
	}

	return style.Render(b.String())
}

func (m Model) renderForm() string {
	titles := map[formKind]string{
		formProject:    "New project",
		formPermission: "New permission",
		formGroup:      "New group",
		formEdit:       "Edit permission",
	}

	lines := []string{m.styles.header.Render(titles[m.form])}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	return m.styles.focused.Render(strings.Join(lines, "\n"))
}

func (m Model) renderConfirm() string {
	c := m.vm.Pending()
	if c == nil {
		return ""
	}
	return m.styles.prompt.Render(c.Prompt + " (y/n)")
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	switch m.mode {
	case modeForm:
		bindings = []key.Binding{m.keys.Submit, m.keys.Next, m.keys.Cancel}
	case modeConfirm:
		bindings = []key.Binding{m.keys.Yes, m.keys.No}
	default:
		bindings = []key.Binding{
			m.keys.Up, m.keys.Down, m.keys.Select, m.keys.FocusToggle,
			m.keys.NewProject, m.keys.NewPermission, m.keys.NewGroup,
			m.keys.Edit, m.keys.Toggle, m.keys.Delete, m.keys.DeleteGroup,
			m.keys.ShowKey, m.keys.Quit,
		}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.help.Render(strings.Join(parts, " • "))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
