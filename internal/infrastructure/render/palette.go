// Package render turns reports into terminal text.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/drift"
	"github.com/felixgeelhaar/sprintpulse/pkg/domain/metrics"
)

// Palette styles text for the terminal. The zero value renders plain text.
type Palette struct {
	Enabled  bool
	renderer *lipgloss.Renderer
}

// NewPalette creates a palette writing to w. Styling is only applied when
// enabled is true.
func NewPalette(w io.Writer, enabled bool) Palette {
	return Palette{Enabled: enabled, renderer: lipgloss.NewRenderer(w)}
}

func (p Palette) paint(color string, bold, faint bool, s string) string {
	if !p.Enabled {
		return s
	}
	r := p.renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	st := r.NewStyle().Bold(bold).Faint(faint)
	if color != "" {
		st = st.Foreground(lipgloss.Color(color))
	}
	return st.Render(s)
}

func (p Palette) Bold(s string) string   { return p.paint("", true, false, s) }
func (p Palette) Dim(s string) string    { return p.paint("", false, true, s) }
func (p Palette) Red(s string) string    { return p.paint("1", false, false, s) }
func (p Palette) Green(s string) string  { return p.paint("2", false, false, s) }
func (p Palette) Yellow(s string) string { return p.paint("3", false, false, s) }
func (p Palette) Blue(s string) string   { return p.paint("4", false, false, s) }
func (p Palette) Header(s string) string { return p.paint("6", true, false, s) }

// Drift colors a drift score by severity.
func (p Palette) Drift(score float64, s string) string {
	switch drift.SeverityFor(score) {
	case drift.SeverityOnTrack:
		return p.Green(s)
	case drift.SeverityWarning:
		return p.Yellow(s)
	default:
		return p.Red(s)
	}
}

// Risk colors text by risk level.
func (p Palette) Risk(level metrics.RiskLevel, s string) string {
	switch level {
	case metrics.RiskLow:
		return p.Green(s)
	case metrics.RiskMedium:
		return p.Yellow(s)
	default:
		return p.Red(s)
	}
}

// pts formats a point value without trailing zeros.
func pts(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// signed formats v with an explicit plus sign for growth.
func signed(v float64) string {
	if v > 0 {
		return "+" + pts(v)
	}
	return pts(v)
}

// truncate shortens s to max runes, ending in "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}
