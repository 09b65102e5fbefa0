package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, with the header gradient colours of the web form as
// accents.
var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
	Violet   = lipgloss.Color("#6a11cb")
	Blue     = lipgloss.Color("#2575fc")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(Violet).
		Bold(true).
		Padding(0, 1)

	QuoteCard = Pane.BorderForeground(Blue).Italic(true)

	Title   = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(Subtext0)
	Hot     = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Green)
	Warning = lipgloss.NewStyle().Foreground(Yellow)
	Failure = lipgloss.NewStyle().Foreground(Red).Bold(true)
)
