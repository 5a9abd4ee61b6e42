package output

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	BlueColor      = lipgloss.Color("#60A5FA") // Blue
)

// Styles holds the renderer-bound styles used for text output.
type Styles struct {
	Title   lipgloss.Style
	Window  lipgloss.Style
	Target  lipgloss.Style
	Token   lipgloss.Style
	URL     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles binds the palette to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(PrimaryColor),
		Window:  r.NewStyle().Bold(true).Foreground(BlueColor),
		Target:  r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Token:   r.NewStyle().Foreground(MutedColor),
		URL:     r.NewStyle(),
		Success: r.NewStyle().Foreground(SecondaryColor),
		Warning: r.NewStyle().Foreground(WarningColor),
		Error:   r.NewStyle().Foreground(ErrorColor),
		Muted:   r.NewStyle().Foreground(MutedColor),
	}
}
