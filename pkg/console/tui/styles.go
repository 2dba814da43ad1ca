package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the console colour palette, in ANSI 256-colour codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	Enabled  lipgloss.Color
	Disabled lipgloss.Color
	Error    lipgloss.Color
	Warning  lipgloss.Color
}

var DefaultTheme = Theme{
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("237"),
	SelectedForeground: lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("75"),
	BorderColor:        lipgloss.Color("240"),
	HelpText:           lipgloss.Color("245"),
	Enabled:            lipgloss.Color("78"),
	Disabled:           lipgloss.Color("240"),
	Error:              lipgloss.Color("203"),
	Warning:            lipgloss.Color("214"),
}

type styles struct {
	header   lipgloss.Style
	normal   lipgloss.Style
	faint    lipgloss.Style
	selected lipgloss.Style
	pane     lipgloss.Style
	focused  lipgloss.Style
	enabled  lipgloss.Style
	disabled lipgloss.Style
	err      lipgloss.Style
	prompt   lipgloss.Style
	help     lipgloss.Style
}

func newStyles(theme Theme) styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)

	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		normal:   lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		selected: lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground).Bold(true),
		pane:     pane,
		focused:  pane.BorderForeground(theme.HeaderForeground),
		enabled:  lipgloss.NewStyle().Foreground(theme.Enabled),
		disabled: lipgloss.NewStyle().Foreground(theme.Disabled),
		err:      lipgloss.NewStyle().Foreground(theme.Error),
		prompt:   lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		help:     lipgloss.NewStyle().Foreground(theme.HelpText),
	}
}
