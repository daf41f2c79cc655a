package export

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/san-kum/babymc/internal/viz"
)

// SliceToSVG draws a raster as one rect per horizontal run of equal pixels,
// with a legend column on the right. scale is the size of a pixel in SVG
// units; pixel rows are drawn pixelAspect times taller than wide.
func SliceToSVG(r *viz.Raster, t viz.Theme, scale, pixelAspect float64) string {
	if r == nil {
		return ""
	}
	if pixelAspect <= 0 {
		pixelAspect = 1
	}

	s := r.Slice
	pw, ph := scale, scale*pixelAspect
	plotW := float64(s.Cols) * pw
	plotH := float64(s.Rows) * ph
	legendW := 220.0
	width := plotW + legendW
	height := max(plotH, 20*float64(len(r.Legend))+20)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g shape-rendering="crispEdges">
`, width, height, width, height, t.Background))

	for row := 0; row < s.Rows; row++ {
		start := 0
		for col := 1; col <= s.Cols; col++ {
			if col < s.Cols && r.At(col, row) == r.At(start, row) {
				continue
			}
			if v := r.At(start, row); v != viz.Empty {
				sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`, float64(start)*pw, float64(row)*ph, float64(col-start)*pw, ph, t.Color(v)))
			}
			start = col
		}
	}
	sb.WriteString("</g>\n")

	counts := r.Counts()
	sb.WriteString(fmt.Sprintf(`<g font-family="monospace" font-size="12" fill="%s">
`, t.Text))
	y := 20.0
	for i, name := range r.Legend {
		if counts[name] == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="12" height="12" fill="%s"/><text x="%.0f" y="%.0f">%s</text>
`, plotW+10, y-10, t.Color(i), plotW+28, y, html.EscapeString(name)))
		y += 20
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, stroke string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, stroke))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteFile writes svg to path, or to w when path is "-".
func WriteFile(path, svg string, w io.Writer) error {
	if path == "-" {
		_, err := io.WriteString(w, svg)
		return err
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
