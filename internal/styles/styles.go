package styles

import "github.com/charmbracelet/lipgloss"

// Color palette for terminal output
const (
	// Accent colors
	Red     = "#FF6188" // Errors, TODO keywords
	Yellow  = "#FFD866" // Tags
	Green   = "#A9DC76" // Success, DONE keywords
	Cyan    = "#78DCE8" // Block markers
	Blue    = "#AB9DF2" // Stars, structure
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, properties
)

// Common styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))

	// Outline styles
	StarsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue))
	TodoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Red))
	DoneStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Green))
	TagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow))
	BlockStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	PropertyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
)
