package terminal

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night palette
const (
	colorRed     = lipgloss.Color("#f7768e")
	colorGreen   = lipgloss.Color("#9ece6a")
	colorBlue    = lipgloss.Color("#7aa2f7")
	colorMagenta = lipgloss.Color("#bb9af7")
	colorGray    = lipgloss.Color("#565f89")
	colorAmber   = lipgloss.Color("#e0af68")
)

// Styles contains the lipgloss styles of the approval prompt
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Body     lipgloss.Style
	Box      lipgloss.Style
	Warning  lipgloss.Style
	Prompt   lipgloss.Style
	Accepted lipgloss.Style
	Rejected lipgloss.Style
}

// NewStyles creates the prompt styles
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(colorMagenta).
			Bold(true),
		Body: lipgloss.NewStyle(),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1),
		Warning: lipgloss.NewStyle().
			Foreground(colorAmber),
		Prompt: lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true),
		Accepted: lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true),
		Rejected: lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true),
	}
}
