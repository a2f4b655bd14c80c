package viz

import "math"

// DrawSchematic renders the generator cross-section: the two pole pieces,
// the coil seen edge-on at the given angle, and the commutator with its
// brushes. Coordinates are in canvas sub-pixels.
func DrawSchematic(c *Canvas, angle float64) {
	c.Clear()

	w := c.Width * 2
	h := c.Height * 4
	cx := w / 2
	cy := h*2/5 + 2

	// pole pieces
	poleW := w / 7
	poleTop := h / 8
	poleBot := cy + (cy - poleTop)
	c.DrawRect(2, poleTop, 2+poleW, poleBot)
	c.DrawRect(w-3-poleW, poleTop, w-3, poleBot)
	c.Text((2+poleW/2)/2, (poleTop+poleBot)/8, "N")
	c.Text((w-3-poleW/2)/2, (poleTop+poleBot)/8, "S")

	// field lines across the gap
	for _, fy := range []int{cy - h/6, cy, cy + h/6} {
		c.DrawLine(4+poleW, fy, w-5-poleW, fy)
	}

	// coil edge-on: a bar through the center, foreshortened vertically
	r := float64(w)/2 - float64(poleW) - 8
	dx := r * math.Cos(angle)
	dy := r * math.Sin(angle) * 0.45
	x0 := cx + int(math.Round(dx))
	y0 := cy - int(math.Round(dy))
	x1 := cx - int(math.Round(dx))
	y1 := cy + int(math.Round(dy))
	c.DrawLine(x0, y0, x1, y1)
	c.DrawCircle(x0, y0, 2)
	c.DrawCircle(x1, y1, 2)

	// commutator: split ring under the coil, gap tracking the angle
	comY := poleBot + h/10
	comR := 6
	c.DrawCircle(cx, comY, comR)
	gx := int(math.Round(float64(comR) * math.Cos(angle)))
	gy := int(math.Round(float64(comR) * math.Sin(angle)))
	c.DrawLine(cx-gx, comY-gy, cx+gx, comY+gy)

	// brushes
	c.DrawLine(cx-comR-4, comY, cx-comR-1, comY)
	c.DrawLine(cx+comR+1, comY, cx+comR+4, comY)
	c.DrawLine(cx-comR-4, comY, cx-comR-4, h-2)
	c.DrawLine(cx+comR+4, comY, cx+comR+4, h-2)
}
