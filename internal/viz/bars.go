package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortstep/internal/sortstep"
)

const (
	barWidth  = 3
	barHeight = 12
)

// renderBars draws one vertical bar per element, scaled to rows lines, with
// the value printed underneath. Highlighted indices use the highlight style.
func renderBars(a sortstep.Array, highlight []int, st styles, rows int) string {
	if len(a) == 0 {
		return ""
	}
	hl := make(map[int]bool, len(highlight))
	for _, i := range highlight {
		hl[i] = true
	}

	var b strings.Builder
	full := strings.Repeat("█", barWidth)
	blank := strings.Repeat(" ", barWidth)
	for r := rows; r >= 1; r-- {
		for i, v := range a {
			if i > 0 {
				b.WriteByte(' ')
			}
			if barRows(v, rows) < r {
				b.WriteString(blank)
				continue
			}
			if hl[i] {
				b.WriteString(st.highlight.Render(full))
			} else {
				b.WriteString(st.bar.Render(full))
			}
		}
		b.WriteByte('\n')
	}

	for i, v := range a {
		if i > 0 {
			b.WriteByte(' ')
		}
		label := fmt.Sprintf("%*d", barWidth, v)
		if hl[i] {
			b.WriteString(st.highlight.Render(label))
		} else {
			b.WriteString(st.label.Render(label))
		}
	}
	return b.String()
}

// barRows scales v to [1, rows]; every element gets at least one row.
func barRows(v, rows int) int {
	h := (v*rows + sortstep.MaxValue - 1) / sortstep.MaxValue
	return max(1, min(h, rows))
}
