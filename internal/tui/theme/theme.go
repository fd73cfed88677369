// Package theme defines the light and dark palettes for the savr dashboard.
package theme

import (
	"github.com/theirongolddev/savr/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Dark          bool
	Primary       lipgloss.Color // Accent for focus, links and progress fill
	PrimaryLight  lipgloss.Color // Accent background tint
	PrimaryDark   lipgloss.Color
	Secondary     lipgloss.Color
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Panel backgrounds
	Card          lipgloss.Color // Metric card backgrounds
	Text          lipgloss.Color // Primary content text
	TextSecondary lipgloss.Color // Labels and metadata
	TextMuted     lipgloss.Color // Hints and disabled text
	Border        lipgloss.Color
	BorderLight   lipgloss.Color
	Success       lipgloss.Color
	SuccessLight  lipgloss.Color
	Warning       lipgloss.Color
	WarningLight  lipgloss.Color
	Error         lipgloss.Color
	ErrorLight    lipgloss.Color
}

// Light is the palette for light terminal backgrounds.
var Light = Theme{
	Name:          "light",
	Primary:       lipgloss.Color("#3B82F6"),
	PrimaryLight:  lipgloss.Color("#DBEAFE"),
	PrimaryDark:   lipgloss.Color("#1E40AF"),
	Secondary:     lipgloss.Color("#8B5CF6"),
	Background:    lipgloss.Color("#F8FAFC"),
	Surface:       lipgloss.Color("#FFFFFF"),
	Card:          lipgloss.Color("#FFFFFF"),
	Text:          lipgloss.Color("#0F172A"),
	TextSecondary: lipgloss.Color("#475569"),
	TextMuted:     lipgloss.Color("#64748B"),
	Border:        lipgloss.Color("#E2E8F0"),
	BorderLight:   lipgloss.Color("#F1F5F9"),
	Success:       lipgloss.Color("#10B981"),
	SuccessLight:  lipgloss.Color("#D1FAE5"),
	Warning:       lipgloss.Color("#F59E0B"),
	WarningLight:  lipgloss.Color("#FEF3C7"),
	Error:         lipgloss.Color("#EF4444"),
	ErrorLight:    lipgloss.Color("#FEE2E2"),
}

// Dark is the palette for dark terminal backgrounds.
var Dark = Theme{
	Name:          "dark",
	Dark:          true,
	Primary:       lipgloss.Color("#60A5FA"),
	PrimaryLight:  lipgloss.Color("#1E3A8A"),
	PrimaryDark:   lipgloss.Color("#93C5FD"),
	Secondary:     lipgloss.Color("#A78BFA"),
	Background:    lipgloss.Color("#0F172A"),
	Surface:       lipgloss.Color("#1E293B"),
	Card:          lipgloss.Color("#334155"),
	Text:          lipgloss.Color("#F8FAFC"),
	TextSecondary: lipgloss.Color("#CBD5E1"),
	TextMuted:     lipgloss.Color("#94A3B8"),
	Border:        lipgloss.Color("#475569"),
	BorderLight:   lipgloss.Color("#334155"),
	Success:       lipgloss.Color("#34D399"),
	SuccessLight:  lipgloss.Color("#064E3B"),
	Warning:       lipgloss.Color("#FBBF24"),
	WarningLight:  lipgloss.Color("#92400E"),
	Error:         lipgloss.Color("#F87171"),
	ErrorLight:    lipgloss.Color("#7F1D1D"),
}

// Active is the palette currently in use.
var Active = Dark

// HasDarkBackground reports the terminal background. Tests replace it.
var HasDarkBackground = lipgloss.HasDarkBackground

// Resolve returns the palette for a stored mode. System follows the
// terminal background.
func Resolve(mode model.ThemeMode) Theme {
	switch mode {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	default:
		if HasDarkBackground() {
			return Dark
		}
		return Light
	}
}

// SetActive sets the active palette from a stored mode.
func SetActive(mode model.ThemeMode) {
	Active = Resolve(mode)
}
