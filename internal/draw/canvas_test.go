package draw

import (
	"strings"
	"testing"
)

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(0, 0) // Top sub-pixel of row 0
	c.SetFloat(1, 1) // Bottom sub-pixel of row 0

	var out strings.Builder
	c.Render(&out)
	s := out.String()

	if !strings.Contains(s, string(BlockUpperHalf)) {
		t.Error("expected upper half block for top sub-pixel")
	}
	if !strings.Contains(s, string(BlockLowerHalf)) {
		t.Error("expected lower half block for bottom sub-pixel")
	}
}

func TestCanvasClipsOutOfBounds(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(-10, -10)
	c.SetFloat(100, 100)

	var out strings.Builder
	c.Render(&out)
	if out.Len() != 0 {
		t.Errorf("out-of-bounds pixels rendered: %q", out.String())
	}
}

func TestDrawCircleFilledCoversCenter(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.DrawCircle(Point{X: 10, Y: 10}, 5, true)

	if !c.pixels[10*20+10] {
		t.Error("filled circle should cover its center")
	}
}

func TestGauge(t *testing.T) {
	g := Gauge(0.5, 10)
	if n := strings.Count(g, string(BlockFull)); n != 5 {
		t.Errorf("Gauge(0.5, 10) has %d full blocks, want 5", n)
	}
	if g := Gauge(2.0, 4); strings.Count(g, string(BlockFull)) != 4 {
		t.Errorf("overfull gauge should clamp: %q", g)
	}
	if Gauge(0.5, 0) != "" {
		t.Error("zero-width gauge should be empty")
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out strings.Builder
	cw := NewChunkWriter(&out, 5, 3)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[4;6Hhi" {
		t.Errorf("WriteAt with offset = %q", got)
	}
}
