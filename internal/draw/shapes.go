// Package draw renders the game to a terminal using half-block
// characters for 2x vertical resolution, with chunked output tuned for
// SSH transport.
package draw

import "strings"

// Point is a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockMedium    = '▒'
	BlockDark      = '▓'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Gauge renders a horizontal bar of the given width, filled to frac
// (0..1). Used for the boost and streak-window indicators.
func Gauge(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))

	var b strings.Builder
	b.Grow(width * 3)
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune(BlockFull)
		} else {
			b.WriteRune(BlockLight)
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
