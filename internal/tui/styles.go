package tui

import (
	"github.com/charmbracelet/lipgloss"

	"daygrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	theme *theme.Theme

	// Chrome
	TitleStyle    lipgloss.Style
	TabStyle      lipgloss.Style
	TabActive     lipgloss.Style
	RulerStyle    lipgloss.Style
	EmptyRowStyle lipgloss.Style
	StatusStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	HelpStyle     lipgloss.Style

	// Block rendering
	SelectedStyle lipgloss.Style
	DraggingStyle lipgloss.Style
	HandleStyle   lipgloss.Style

	// Modals
	ModalStyle       lipgloss.Style
	ModalTitleStyle  lipgloss.Style
	ModalBodyStyle   lipgloss.Style
	ModalLabelStyle  lipgloss.Style
	ModalHintStyle   lipgloss.Style
	ModalInputStyle  lipgloss.Style
	ModalActiveInput lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	bg := lipgloss.Color(t.Bg)
	fg := lipgloss.Color(t.Fg)
	muted := lipgloss.Color(t.FgMuted)
	accent := lipgloss.Color(t.Accent)
	warning := lipgloss.Color(t.Warning)
	highlight := lipgloss.Color(t.BgHighlight)
	selection := lipgloss.Color(t.BgSelection)

	return &Styles{
		theme: t,

		TitleStyle:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		TabStyle:      lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		TabActive:     lipgloss.NewStyle().Foreground(bg).Background(accent).Bold(true).Padding(0, 1),
		RulerStyle:    lipgloss.NewStyle().Foreground(muted),
		EmptyRowStyle: lipgloss.NewStyle().Background(highlight),
		StatusStyle:   lipgloss.NewStyle().Foreground(fg),
		ErrorStyle:    lipgloss.NewStyle().Foreground(warning).Bold(true),
		HelpStyle:     lipgloss.NewStyle().Foreground(muted),

		SelectedStyle: lipgloss.NewStyle().Background(selection).Foreground(fg).Bold(true),
		DraggingStyle: lipgloss.NewStyle().Foreground(warning).Bold(true),
		HandleStyle:   lipgloss.NewStyle().Foreground(accent).Bold(true),

		ModalStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.ModalBorder)).
			Padding(1, 2),
		ModalTitleStyle:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		ModalBodyStyle:   lipgloss.NewStyle().Foreground(fg),
		ModalLabelStyle:  lipgloss.NewStyle().Foreground(muted),
		ModalHintStyle:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		ModalInputStyle:  lipgloss.NewStyle().Foreground(fg),
		ModalActiveInput: lipgloss.NewStyle().Foreground(fg).Background(highlight),
	}
}

// BlockStyle derives the style for a block body from its own color.
func (s *Styles) BlockStyle(accent string) lipgloss.Style {
	if accent == "" {
		accent = s.theme.Accent
	}
	bg := theme.BlockBg(accent, s.theme.Bg)
	fgHex := theme.TextOn(bg, s.theme.Fg, s.theme.Bg)
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fgHex))
}

// ContinuationStyle derives the dimmer style for the continuation
// segment of a midnight-wrapping block.
func (s *Styles) ContinuationStyle(accent string) lipgloss.Style {
	if accent == "" {
		accent = s.theme.Accent
	}
	bg := theme.ContinuationBg(accent, s.theme.Bg)
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(s.theme.FgMuted))
}
