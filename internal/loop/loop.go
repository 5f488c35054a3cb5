// Package loop drives an interactive session: the title screen, the
// fixed-rate Input → Tick → Draw cycle of a mission, and the results
// screen with leaderboard submission.
package loop

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/okabe/colossus/internal/config"
	"github.com/okabe/colossus/internal/draw"
	"github.com/okabe/colossus/internal/input"
	"github.com/okabe/colossus/internal/leaderboard"
	"github.com/okabe/colossus/internal/sim"
	"github.com/okabe/colossus/internal/vmath"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// maxTickDelta caps the simulation step after a stall (debugger pause,
// network hiccup) so the mission doesn't jump.
const maxTickDelta = 0.25

// Logical render resolution. Game rendering uses these coordinates and
// scales to the actual terminal size.
const (
	targetWidth  = 120 // Logical width
	targetHeight = 80  // Logical height (sub-pixels, so 40 terminal rows)
)

// Max terminal area used for rendering; larger terminals get a
// centered, bordered viewport.
const (
	maxTermWidth  = 160
	maxTermHeight = 45
)

// viewSpan is the world width visible across the canvas, in world units.
const viewSpan = 180.0

// Inactivity thresholds in seconds. Idle SSH sessions hold server
// resources, so they get warned and then disconnected.
const (
	inactivityWarn       = 90
	inactivityDisconnect = 120
)

// submitTimeout bounds the leaderboard round-trip so a slow store never
// stalls the results screen.
const submitTimeout = 5 * time.Second

type phase int

const (
	phaseTitle phase = iota
	phasePlaying
	phaseResults
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Tuning       config.Tuning
	Store        leaderboard.Store // Optional; nil disables submission
	Username     string
}

// feedEntry is one line of the transient combat feed.
type feedEntry struct {
	text string
	ttl  float64
}

// submitOutcome is the answer from the async leaderboard submission.
type submitOutcome struct {
	res leaderboard.Result
	top []leaderboard.Entry
	err error
}

// Game is one interactive session.
type Game struct {
	opts       Options
	missionCfg sim.MissionConfig

	mission *sim.Mission
	result  sim.Result

	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	writer io.Writer
	stream *input.Stream

	phase      phase
	running    bool
	delta      time.Duration
	inp        input.Input
	lastInput  time.Time
	isInactive bool

	feed []feedEntry

	submitCh  chan submitOutcome
	submitted *submitOutcome
}

// Run starts a session and blocks until the player quits or the
// connection drops.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}

	missionCfg, err := opts.Tuning.MissionConfig()
	if err != nil {
		return err
	}

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, targetWidth, targetHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	g := &Game{
		opts:       opts,
		missionCfg: missionCfg,
		canvas:     canvas,
		cw:         draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:     w,
		stream:     input.StartStream(r),
		phase:      phaseTitle,
		running:    true,
		lastInput:  time.Now(),
	}
	return g.run()
}

func (g *Game) run() error {
	draw.HideCursor(g.writer)
	defer draw.ShowCursor(g.writer)
	draw.ClearScreen(g.writer)

	lastTime := time.Now()

	for g.running {
		frameStart := time.Now()
		g.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		g.processInput()
		g.updateScreen()

		switch g.phase {
		case phaseTitle:
			g.updateTitle()
		case phasePlaying:
			g.updatePlaying()
		case phaseResults:
			g.updateResults()
		}

		if err := g.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(g.writer)
	return nil
}

// processInput drains pending input and tracks inactivity.
func (g *Game) processInput() {
	g.inp = input.ReadInput(g.stream)

	if len(g.inp.Pressed) > 0 {
		g.lastInput = time.Now()
		g.isInactive = false
	} else if time.Since(g.lastInput).Seconds() > inactivityDisconnect {
		g.running = false
	} else if time.Since(g.lastInput).Seconds() > inactivityWarn {
		g.isInactive = true
	}

	if g.inp.Quit {
		g.running = false
	}
}

// updateScreen handles terminal resize, clamping to the max render
// resolution. Actual size changes clear the terminal to remove residue
// outside the new canvas area.
func (g *Game) updateScreen() {
	termWidth, termHeight, err := g.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != g.canvas.TerminalWidth() || renderHeight != g.canvas.TerminalHeight() ||
		offsetCol != g.canvas.OffsetCol() || offsetRow != g.canvas.OffsetRow() {
		draw.ClearScreen(g.writer)
	}

	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.SetOffset(offsetCol, offsetRow)
	g.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution
// and computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > maxTermWidth {
		renderWidth = maxTermWidth
	}
	if renderHeight > maxTermHeight {
		renderHeight = maxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func (g *Game) updateTitle() {
	if g.inp.Enter || g.inp.Fire {
		g.startMission()
	}
}

func (g *Game) updatePlaying() {
	if g.inp.Escape {
		// Abort: back to the title, nothing recorded.
		g.mission = nil
		g.setPhase(phaseTitle)
		return
	}

	dt := g.delta.Seconds()
	if dt > maxTickDelta {
		dt = maxTickDelta
	}
	g.mission.Tick(g.controls(), dt)
	g.updateFeed(dt)

	if g.mission.Over() {
		if res, ok := g.mission.Result(); ok {
			g.result = res
			g.beginSubmit(res)
		}
		g.setPhase(phaseResults)
	}
}

func (g *Game) updateResults() {
	g.pollSubmit()

	if g.inp.Enter || g.inp.Fire {
		g.startMission()
	} else if g.inp.Escape {
		g.setPhase(phaseTitle)
	}
}

func (g *Game) startMission() {
	mission, err := sim.NewMission(g.missionCfg, g)
	if err != nil {
		// Config was validated in Run; a failure here means the tuning
		// produced an empty structure. Fall back to the title.
		g.setPhase(phaseTitle)
		return
	}
	g.mission = mission
	g.feed = g.feed[:0]
	g.submitCh = nil
	g.submitted = nil
	g.setPhase(phasePlaying)
}

func (g *Game) setPhase(p phase) {
	input.ResetKeyInput(g.stream)
	g.phase = p
}

// controls maps the frame's key state onto simulation controls.
func (g *Game) controls() sim.Controls {
	return sim.Controls{
		Forward:     g.inp.Forward,
		Backward:    g.inp.Backward,
		Left:        g.inp.Left,
		Right:       g.inp.Right,
		Up:          g.inp.Up,
		Down:        g.inp.Down,
		RotateLeft:  g.inp.TurnLeft,
		RotateRight: g.inp.TurnRight,
		Boost:       g.inp.Boost,
		Fire:        g.inp.Fire,
	}
}

// beginSubmit sends the finished mission to the leaderboard without
// blocking the results screen.
func (g *Game) beginSubmit(res sim.Result) {
	if g.opts.Store == nil {
		return
	}

	name := g.opts.Username
	if name == "" {
		name = "anonymous"
	}
	entry := leaderboard.Entry{
		Name:            name,
		Score:           res.FinalScore,
		DestructionRate: res.DestructionPercent,
		PlayTime:        res.PlayTime,
	}

	ch := make(chan submitOutcome, 1)
	g.submitCh = ch
	store := g.opts.Store
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		out := submitOutcome{}
		out.res, out.err = store.Submit(ctx, entry)
		if out.err == nil {
			out.top, _ = store.Top(ctx, 5)
		}
		ch <- out
	}()
}

// pollSubmit picks up the submission outcome once it arrives.
func (g *Game) pollSubmit() {
	if g.submitCh == nil || g.submitted != nil {
		return
	}
	select {
	case out := <-g.submitCh:
		g.submitted = &out
	default:
	}
}

// Combat feed: transient event lines shown during play.

const feedTTL = 3.0
const feedMax = 5

func (g *Game) pushFeed(text string) {
	if len(g.feed) >= feedMax {
		copy(g.feed, g.feed[1:])
		g.feed = g.feed[:len(g.feed)-1]
	}
	g.feed = append(g.feed, feedEntry{text: text, ttl: feedTTL})
}

func (g *Game) updateFeed(dt float64) {
	kept := g.feed[:0]
	for _, e := range g.feed {
		e.ttl -= dt
		if e.ttl > 0 {
			kept = append(kept, e)
		}
	}
	g.feed = kept
}

// The game is the mission's event listener; events become feed lines.

func (g *Game) OnHit(vmath.Vec3, float64, bool, sim.Category) {}

func (g *Game) OnSegmentDestroyed(index int) {
	if g.mission == nil {
		return
	}
	if seg, ok := g.mission.Structure().Segment(index); ok {
		g.pushFeed(seg.Category.String() + " destroyed  +" + strconv.Itoa(seg.Bounty))
	}
}

func (g *Game) OnScoreAwarded(points, newStreak int) {
	if newStreak >= 5 && newStreak%5 == 0 {
		g.pushFeed("streak x" + strconv.Itoa(newStreak))
	}
}

func (g *Game) OnCollision(vmath.Vec3) {
	g.pushFeed("hull impact")
}

func (g *Game) OnMissionEnd(sim.Result) {}
