// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/statement-sorter/internal/model"
)

var (
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4") // Teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// Icons.
const (
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	FolderIcon  = "🗄️"
)

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatSummary renders the end-of-run counters.
func FormatSummary(s model.Summary) string {
	line := fmt.Sprintf("%s %d renamed, %d skipped, %d failed",
		FolderIcon, s.FilesRenamed, s.FilesSkipped, s.FilesFailed)
	if s.FilesProcessed == 0 {
		return SubtleStyle.Render(line)
	}
	if s.FilesFailed > 0 {
		return ErrorStyle.Render(line)
	}
	if s.FilesSkipped > 0 {
		return WarningStyle.Render(line)
	}
	return SuccessStyle.Render(line)
}
