package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render draws the raster as coloured blocks, one run of equal pixels per
// style call.
func Render(r *Raster, t Theme) string {
	var b strings.Builder
	s := r.Slice
	for row := 0; row < s.Rows; row++ {
		start := 0
		for col := 1; col <= s.Cols; col++ {
			if col < s.Cols && r.At(col, row) == r.At(start, row) {
				continue
			}
			v := r.At(start, row)
			run := strings.Repeat(string(Glyph(v)), col-start)
			if v != Empty {
				run = strings.Repeat("█", col-start)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(t.Color(v)).Render(run))
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend lists the entries present in the raster with their pixel share,
// largest first.
func Legend(r *Raster, t Theme) string {
	counts := r.Counts()
	idx := make([]int, 0, len(counts))
	for i, name := range r.Legend {
		if counts[name] > 0 {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return counts[r.Legend[idx[a]]] > counts[r.Legend[idx[b]]]
	})

	total := len(r.Index)
	var b strings.Builder
	for _, i := range idx {
		name := r.Legend[i]
		swatch := lipgloss.NewStyle().Foreground(t.Color(i)).Render("██")
		share := 100 * float64(counts[name]) / float64(total)
		fmt.Fprintf(&b, "%s %c %-24s %5.1f%%\n", swatch, Glyph(i), name, share)
	}

	overlaps := 0
	for _, v := range r.Index {
		if v == Overlap {
			overlaps++
		}
	}
	if overlaps > 0 {
		fmt.Fprintf(&b, "%s overlapping pixels: %d\n", StatusFail.Render("!"), overlaps)
	}
	return b.String()
}
