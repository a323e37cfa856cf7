package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/timeline/pkg/tui/calendar"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Day      DayTheme
	Task     TaskTheme
	Modal    ModalTheme
	Calendar calendar.Styles
}

// FooterTheme groups styles used by the bottom status and prompt lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
	Hint   lipgloss.Style
}

// DayTheme styles day headers. Header colours fade from Near to Far as a
// day gets further from today.
type DayTheme struct {
	Title      lipgloss.Style
	Today      lipgloss.Style
	Unresolved lipgloss.Style
	Count      lipgloss.Style
	Near       string
	Far        string
}

// TaskTheme styles task rows.
type TaskTheme struct {
	Open     lipgloss.Style
	Done     lipgloss.Style
	Bullet   lipgloss.Style
	Meta     lipgloss.Style
	Selected lipgloss.Style
	Grabbed  lipgloss.Style
	Match    lipgloss.Style
}

// ModalTheme styles centered overlays such as help.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		},
		Day: DayTheme{
			Title:      lipgloss.NewStyle().Bold(true),
			Today:      lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#5fd7ff")),
			Unresolved: lipgloss.NewStyle().Bold(true).Italic(true).Foreground(lipgloss.Color("180")),
			Count:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Near:       "#87d7af",
			Far:        "#6c6c6c",
		},
		Task: TaskTheme{
			Open:     lipgloss.NewStyle(),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("133")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
			Grabbed:  lipgloss.NewStyle().Bold(true).Reverse(true),
			Match:    lipgloss.NewStyle().Underline(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Calendar: calendar.Styles{
			Title:    lipgloss.NewStyle().Bold(true),
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Open:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
			Today:    lipgloss.NewStyle().Underline(true).Bold(true),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
	}
}

// fadeDays is the distance at which a header reaches the Far colour.
const fadeDays = 14

// DayColor blends from Near to Far by how many days away from today a day
// is. Invalid hex values fall back to Near.
func (d DayTheme) DayColor(distance int) lipgloss.Color {
	if distance < 0 {
		distance = -distance
	}
	near, err := colorful.Hex(d.Near)
	if err != nil {
		return lipgloss.Color(d.Near)
	}
	far, err := colorful.Hex(d.Far)
	if err != nil {
		return lipgloss.Color(d.Near)
	}
	t := float64(distance) / fadeDays
	if t > 1 {
		t = 1
	}
	return lipgloss.Color(near.BlendLab(far, t).Clamped().Hex())
}
