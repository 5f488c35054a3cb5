package loop

import (
	"fmt"
	"time"

	"github.com/okabe/colossus/internal/draw"
)

// drawTitleScreen draws the title screen.
func (g *Game) drawTitleScreen() {
	centerX := g.canvas.TerminalWidth() / 2
	centerY := g.canvas.TerminalHeight() / 2
	cw := g.cw

	titleArt := []string{
		`   ___ ___  _    ___  ___ ___ _   _ ___  `,
		`  / __/ _ \| |  / _ \/ __/ __| | | / __| `,
		` | (_| (_) | |_| (_) \__ \__ \ |_| \__ \ `,
		`  \___\___/|____\___/|___/___/\___/|___/ `,
		`                                         `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	titleStartY := centerY - 9
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	subtitle := "~ Dreadnought assault over SSH ~"
	cw.WriteAt(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, subtitle)

	brief := fmt.Sprintf("Destroy %.0f%% of the dreadnought in %.0f seconds",
		g.opts.Tuning.Mission.WinThresholdPercent, g.opts.Tuning.Mission.DurationSeconds)
	cw.WriteAt(centerX-len(brief)/2, titleStartY+len(titleArt)+2, brief)

	controlsY := titleStartY + len(titleArt) + 4
	controlHeader := "Controls"
	cw.WriteAt(centerX-len(controlHeader)/2, controlsY, controlHeader)

	controlLines := []string{
		"W S  . . . .  Thrust fore/aft",
		"A D  . . . . . . . . . Strafe",
		"R F  . . . . . . Climb / dive",
		"Q E / < >  . . . . . . Rotate",
		"B  . . . . . . . . . .  Boost",
		"SPACE  . . . . . . . . . Fire",
		"ESC  . . . . . Abort mission",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(controlLines[0])/2, controlsY+1+i, line)
	}

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Launch  <<"
		cw.WriteAt(centerX-len(prompt)/2, controlsY+len(controlLines)+2, prompt)
	}

	ghURL := "https://github.com/okabe/colossus"
	ghLabel := "github.com/okabe/colossus"
	ghLine := fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", ghURL, ghLabel)
	cw.WriteAt(centerX-len(ghLabel)/2, controlsY+len(controlLines)+4, ghLine)
}

// drawHUD draws the in-flight HUD. Fields use fixed-width formatting so
// shrinking values don't leave residual characters.
func (g *Game) drawHUD() {
	snap := g.mission.Snapshot()
	termWidth := g.canvas.TerminalWidth()
	termHeight := g.canvas.TerminalHeight()
	cw := g.cw

	// Score and streak (top left).
	cw.WriteAt(2, 1, fmt.Sprintf("SCORE %-8d", snap.Score))
	if snap.Streak > 0 {
		cw.WriteAt(2, 2, fmt.Sprintf("x%-3d %s", snap.Streak, draw.Gauge(snap.StreakWindowPercent/100, 10)))
	}

	// Mission clock and destruction (top right).
	clock := fmt.Sprintf("TIME %s", fmtClock(snap.TimeRemaining))
	cw.WriteAt(termWidth-len(clock)-1, 1, clock)
	hull := fmt.Sprintf("HULL %5.1f%% / %.0f%%", snap.DestructionPercent, g.opts.Tuning.Mission.WinThresholdPercent)
	cw.WriteAt(termWidth-len(hull)-1, 2, hull)

	// Boost gauge and position (bottom left).
	cw.WriteAt(2, termHeight-1, "BOOST "+draw.Gauge(snap.BoostPercent/100, 12))
	cw.WriteAt(2, termHeight, fmt.Sprintf("X:%-6.0f ALT:%-6.0f Z:%-6.0f", snap.Pos.X, snap.Pos.Y, snap.Pos.Z))

	// Speed (bottom right).
	spd := fmt.Sprintf("SPD %-5.0f", snap.Speed)
	cw.WriteAt(termWidth-len(spd)-1, termHeight, spd)
}

// drawInactivityScreen draws the idle-session warning.
func (g *Game) drawInactivityScreen() {
	centerX := g.canvas.TerminalWidth() / 2
	centerY := g.canvas.TerminalHeight() / 2
	cw := g.cw

	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(inactivityDisconnect-time.Since(g.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawResultsScreen draws the debriefing after a mission ends.
func (g *Game) drawResultsScreen() {
	centerX := g.canvas.TerminalWidth() / 2
	centerY := g.canvas.TerminalHeight() / 2
	cw := g.cw
	res := g.result

	var titleArt []string
	if res.Victory {
		titleArt = []string{
			` __   _____ ___ _____ ___  _____   __ `,
			` \ \ / /_ _/ __|_   _/ _ \| _ \ \ / / `,
			`  \ V / | | (__  | || (_) |   /\ V /  `,
			`   \_/ |___\___| |_| \___/|_|_\ |_|   `,
			`                                      `,
		}
	} else {
		titleArt = []string{
			`  ___  ___ ___ ___   _ _____  `,
			` |   \| __| __| __| /_\_   _| `,
			` | |) | _|| _|| _| / _ \| |   `,
			` |___/|___|_| |___/_/ \_\_|   `,
			`                              `,
		}
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}
	titleStartY := centerY - 11
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	var reason string
	if res.Victory {
		reason = fmt.Sprintf("Dreadnought destroyed with %s to spare", fmtClock(res.TimeRemaining))
	} else {
		reason = fmt.Sprintf("Mission clock expired at %.1f%% destruction", res.DestructionPercent)
	}
	cw.WriteAt(centerX-len(reason)/2, titleStartY+len(titleArt)+1, reason)

	// Score breakdown.
	breakdown := []string{
		fmt.Sprintf("Base score         %8d", res.BaseScore),
		fmt.Sprintf("Time bonus         %8d", res.TimeBonus),
		fmt.Sprintf("Destruction bonus  %8d", res.DestructionBonus),
		fmt.Sprintf("Streak bonus       %8d", res.StreakBonus),
		"--------------------------",
		fmt.Sprintf("Final score        %8d", res.FinalScore),
	}
	breakY := titleStartY + len(titleArt) + 3
	for i, line := range breakdown {
		cw.WriteAt(centerX-len(breakdown[0])/2, breakY+i, line)
	}

	stats := fmt.Sprintf("Accuracy %.0f%%  |  Segments %d  |  Best streak x%d",
		res.Stats.Accuracy(), res.Stats.SegmentsDestroyed, res.Stats.MaxStreak)
	cw.WriteAt(centerX-len(stats)/2, breakY+len(breakdown)+1, stats)

	g.drawLeaderboard(centerX, breakY+len(breakdown)+3)

	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  SPACE to fly again - ESC for title  <<"
		cw.WriteAt(centerX-len(prompt)/2, breakY+len(breakdown)+10, prompt)
	}
}

// drawLeaderboard shows the submission outcome once it arrives.
func (g *Game) drawLeaderboard(centerX, row int) {
	cw := g.cw

	switch {
	case g.submitCh == nil:
		return
	case g.submitted == nil:
		msg := "Submitting score..."
		cw.WriteAt(centerX-len(msg)/2, row, msg)
	case g.submitted.err != nil:
		msg := "Leaderboard unavailable"
		cw.WriteAt(centerX-len(msg)/2, row, msg)
	default:
		rank := fmt.Sprintf("Global rank #%d", g.submitted.res.Rank)
		if g.submitted.res.IsNewHighScore {
			rank += "  *** NEW HIGH SCORE ***"
		}
		cw.WriteAt(centerX-len(rank)/2, row, rank)

		for i, e := range g.submitted.top {
			line := fmt.Sprintf("%d. %-16s %8d", i+1, e.Name, e.Score)
			cw.WriteAt(centerX-len(line)/2, row+2+i, line)
		}
	}
}

// fmtClock formats seconds as M:SS.
func fmtClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
