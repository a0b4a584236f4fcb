package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from a theme each time it changes.
type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	tabActive lipgloss.Style
	tab       lipgloss.Style
	bar       lipgloss.Style
	highlight lipgloss.Style
	label     lipgloss.Style
	narration lipgloss.Style
	counter   lipgloss.Style
	notice    lipgloss.Style
	fault     lipgloss.Style
	key       lipgloss.Style
	keyOff    lipgloss.Style
	running   lipgloss.Style
	idle      lipgloss.Style
	panel     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:    lipgloss.NewStyle().Foreground(t.Muted),
		tabActive: lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Secondary).Padding(0, 1),
		tab:       lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		bar:       lipgloss.NewStyle().Foreground(t.Bar),
		highlight: lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
		label:     lipgloss.NewStyle().Foreground(t.Muted),
		narration: lipgloss.NewStyle().Foreground(t.Text).Italic(true),
		counter:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		notice:    lipgloss.NewStyle().Foreground(t.Success).Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		fault:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		key:       lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		keyOff:    lipgloss.NewStyle().Foreground(t.Muted).Strikethrough(true),
		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		idle:      lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
	}
}

// SparklineChart renders a mini sparkline from values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// keep the most recent values when there are more than fit
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// Separator draws a decorative rule of the given width.
func Separator(width int) string {
	if width < 8 {
		return strings.Repeat("─", max(width, 0))
	}
	mid := width / 2
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}
