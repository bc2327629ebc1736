// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Warning, Error, etc.) rather than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds the colors for each semantic role.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type Palette struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// Dark uses bright colors for dark terminal backgrounds.
var Dark = Palette{
	Success: "10",  // bright green
	Warning: "11",  // bright yellow
	Error:   "9",   // bright red
	Info:    "14",  // bright cyan
	Muted:   "245", // medium gray
	Header:  "bold",
}

// Light uses dark saturated colors for light terminal backgrounds.
var Light = Palette{
	Success: "28",  // dark green
	Warning: "130", // dark orange
	Error:   "124", // dark red
	Info:    "27",  // dark blue
	Muted:   "240", // dark gray
	Header:  "bold",
}

var (
	enabled bool
	palette Palette

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init initializes the style package with the given enabled state.
// It also respects NO_COLOR and RECOMMIT_NO_COLOR environment variables;
// if either is set (to any non-empty value), styling is disabled
// regardless of the enabled parameter.
//
// This function should be called once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("RECOMMIT_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if enabled {
		InitWithPalette(DetectPalette())
	}
}

// InitWithPalette enables styling with an explicit palette.
func InitWithPalette(p Palette) {
	enabled = true
	palette = p

	// Force ANSI256 regardless of TTY detection so both basic (0-15)
	// and extended colors render.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(p.Success)
	warningStyle = makeStyle(p.Warning)
	errorStyle = makeStyle(p.Error)
	infoStyle = makeStyle(p.Info)
	mutedStyle = makeStyle(p.Muted)
	headerStyle = makeStyle(p.Header)
}

// DetectPalette picks Dark or Light from the terminal background.
// termenv reports dark when detection fails.
func DetectPalette() Palette {
	if termenv.HasDarkBackground() {
		return Dark
	}
	return Light
}

// Current returns the active palette. Empty when styling is disabled.
func Current() Palette {
	if !enabled {
		return Palette{}
	}
	return palette
}

// makeStyle creates a lipgloss style from a color value.
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles text for informational messages.
func Info(text string) string { return render(infoStyle, text) }

// Header styles text for section headers or titles.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles text for less important or secondary information.
func Muted(text string) string { return render(mutedStyle, text) }
