package loop

import (
	"github.com/okabe/colossus/internal/draw"
	"github.com/okabe/colossus/internal/sim"
	"github.com/okabe/colossus/internal/vmath"
)

// worldScale converts world units to logical canvas units.
const worldScale = float64(targetWidth) / viewSpan

// drawFrame renders the current frame: battlefield canvas first, text
// overlays on top, then one chunked flush.
func (g *Game) drawFrame() error {
	g.cw.WriteString("\033[H\033[2J")
	g.canvas.Clear()

	if g.phase != phaseTitle && g.mission != nil {
		g.drawWorld()
	}
	g.canvas.Render(g.cw)
	g.canvas.RenderBorder(g.cw)

	switch {
	case g.isInactive:
		g.drawInactivityScreen()
	case g.phase == phaseTitle:
		g.drawTitleScreen()
	case g.phase == phasePlaying:
		g.drawHUD()
		g.drawFeed()
	case g.phase == phaseResults:
		g.drawResultsScreen()
	}

	return g.cw.Flush()
}

// project maps a world position into logical canvas coordinates. The
// view is a top-down projection centered on the craft: world X runs
// right, world Z runs up the screen, world Y (altitude) is flattened.
func (g *Game) project(p vmath.Vec3) draw.Point {
	u := g.mission.Unit()
	return draw.Point{
		X: targetWidth/2 + (p.X-u.Pos.X)*worldScale,
		Y: targetHeight/2 - (p.Z-u.Pos.Z)*worldScale,
	}
}

func (g *Game) drawWorld() {
	g.drawStructure()
	g.drawBeam()
	g.drawRounds()
	g.drawShip()
}

// drawStructure draws every live segment as a circle; the core is
// filled so it reads as the heart of the target. Damaged segments
// shrink toward a floor so wear is visible at a glance.
func (g *Game) drawStructure() {
	g.mission.Structure().EachLive(func(seg *sim.Segment) {
		pt := g.project(seg.Center)
		frac := 1.0
		if seg.MaxHealth > 0 {
			frac = seg.Health() / seg.MaxHealth
		}
		visual := seg.Radius * (0.5 + 0.5*frac)
		filled := seg.Category == sim.CategoryCore
		g.canvas.DrawCircle(pt, visual*worldScale, filled)
	})
}

// drawBeam draws the beam while the trigger is held, ending at the
// first hull intersection or at max range.
func (g *Game) drawBeam() {
	beam := g.opts.Tuning.Beam
	if !g.inp.Fire || beam.DamagePerSecond <= 0 || beam.Range <= 0 {
		return
	}

	u := g.mission.Unit()
	dir := u.Forward()
	dist := beam.Range
	if hit, ok := g.mission.Structure().Cast(u.Pos, dir, beam.Range); ok {
		dist = hit.Distance
	}
	g.canvas.DrawLine(g.project(u.Pos), g.project(u.Pos.Add(dir.Scale(dist))))
}

func (g *Game) drawRounds() {
	for _, r := range g.mission.Rounds() {
		pt := g.project(r.Pos)
		g.canvas.SetFloat(pt.X, pt.Y)
	}
}

// drawShip draws the craft as a triangle pointing along its heading.
func (g *Game) drawShip() {
	u := g.mission.Unit()

	pts := g.canvas.BorrowPoints(3)
	pts[0] = g.project(u.Pos.Add(vmath.Forward(u.Yaw).Scale(3.0)))
	pts[1] = g.project(u.Pos.Add(vmath.Forward(u.Yaw + 2.6).Scale(2.2)))
	pts[2] = g.project(u.Pos.Add(vmath.Forward(u.Yaw - 2.6).Scale(2.2)))
	g.canvas.DrawPolygon(pts, true)
}

func (g *Game) drawFeed() {
	termHeight := g.canvas.TerminalHeight()
	base := termHeight - 2 - len(g.feed)
	for i, e := range g.feed {
		g.cw.WriteAt(2, base+i, e.text)
	}
}
