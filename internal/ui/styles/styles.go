// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions so the progress display and
// the status table share one palette. Call [Init] after loading config to
// switch to a configured theme.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = DefaultTheme.Primary

	// Accent is the highlight color (pink)
	Accent color.Color = DefaultTheme.Accent

	// Success is used for positive outcomes (green)
	Success color.Color = DefaultTheme.Success

	// Error is used for error messages (red)
	Error color.Color = DefaultTheme.Error

	// Muted is used for inactive text (gray)
	Muted color.Color = DefaultTheme.Muted

	// Normal is the standard text color (light gray)
	Normal color.Color = DefaultTheme.Normal

	// Info is used for informational text (gray)
	Info color.Color = DefaultTheme.Info

	// Warning is used for pending changes (orange)
	Warning color.Color = DefaultTheme.Warning
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)

// Status segment styles of the table's status column
var (
	StagedStyle     = SuccessStyle
	ModifiedStyle   = WarningStyle
	DiffStyle       = lipgloss.NewStyle().Foreground(Primary)
	UntrackedStyle  = lipgloss.NewStyle().Foreground(Accent)
	ConflictedStyle = ErrorStyle
	SubmoduleStyle  = PrimaryStyle
	AheadStyle      = SuccessStyle
	BehindStyle     = MutedStyle
	AlertStyle      = ErrorStyle.Bold(true)
	CleanStyle      = SuccessStyle
)
