package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == brailleBase {
		t.Error("expected dot at (0,0)")
	}

	c.Clear()
	if c.Grid[0][0] != brailleBase {
		t.Error("expected empty cell after clear")
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 2)

	// out-of-range coordinates must be ignored, not panic
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	c.DrawLine(-5, -5, 200, 200)
}

func TestCanvasText(t *testing.T) {
	c := NewCanvas(10, 2)
	c.Text(2, 0, "NS")

	if c.Grid[0][2] != 'N' || c.Grid[0][3] != 'S' {
		t.Error("expected label runes in grid")
	}

	// dots must not overwrite label cells
	c.Set(4, 0)
	if c.Grid[0][2] != 'N' {
		t.Error("label cell clobbered by dot")
	}
}

func TestDrawSchematicProducesOutput(t *testing.T) {
	c := NewCanvas(56, 18)
	DrawSchematic(c, 0.7)

	out := c.String()
	if !strings.Contains(out, "N") || !strings.Contains(out, "S") {
		t.Error("expected pole labels in schematic")
	}

	lit := 0
	for _, r := range out {
		if r > brailleBase && r < brailleBase+256 {
			lit++
		}
	}
	if lit < 20 {
		t.Errorf("schematic looks empty: %d lit cells", lit)
	}
}
