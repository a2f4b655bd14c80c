package export

import (
	"fmt"
	"strings"

	"github.com/mwaldner/genlab/internal/viz"
)

// CanvasToSVG converts a braille canvas snapshot of the schematic to a
// standalone SVG: one filled circle per lit sub-pixel, labels as text.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#101014"/>
<g fill="#ffb454">
`, width, height, width, height))

	dotBits := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			if r < 0x2800 {
				// label cell
				if r != 0 && r != ' ' {
					sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%.1f" fill="#e6e6e6">%c</text>
`, baseX, baseY+scale*3, scale*3.5, r))
				}
				continue
			}

			pattern := int(r - 0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SchematicSVG draws the generator at the given angle and returns it as SVG.
func SchematicSVG(angle float64, scale float64) string {
	canvas := viz.NewCanvas(56, 18)
	viz.DrawSchematic(canvas, angle)
	return CanvasToSVG(canvas, scale)
}
