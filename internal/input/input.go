// Package input reads raw terminal bytes into per-frame key state.
// Terminals only deliver key presses, not releases, so each key is
// considered held for a short window after its last byte. That window
// is what makes simultaneous combinations (thrust while turning while
// firing) work over a byte stream.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input is the current frame's key state.
type Input struct {
	Quit       bool // Ctrl+C
	Forward    bool // w
	Backward   bool // s
	Left       bool // a
	Right      bool // d
	Up         bool // r
	Down       bool // f
	TurnLeft   bool // q or left arrow
	TurnRight  bool // e or right arrow
	Boost      bool // b or shift-held movement
	Fire       bool // space
	Enter      bool
	Escape     bool
	Pressed    []byte
}

type keyState struct {
	quit      time.Time
	forward   time.Time
	backward  time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	turnLeft  time.Time
	turnRight time.Time
	boost     time.Time
	fire      time.Time
	enter     time.Time
	escape    time.Time
}

// Stream delivers input bytes via a channel and tracks key state so
// ReadInput can detect key combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The channel closes when the reader returns an error (session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes (non-blocking), updates the key
// hold timestamps, and returns the frame's input state. Arrow keys
// arrive as CSI escape sequences and map onto turning.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.turnRight = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.turnLeft = now
				i += 2
				continue
			case 'A': // Up arrow
				s.state.up = now
				i += 2
				continue
			case 'B': // Down arrow
				s.state.down = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:      held(s.state.quit),
		Forward:   held(s.state.forward),
		Backward:  held(s.state.backward),
		Left:      held(s.state.left),
		Right:     held(s.state.right),
		Up:        held(s.state.up),
		Down:      held(s.state.down),
		TurnLeft:  held(s.state.turnLeft),
		TurnRight: held(s.state.turnRight),
		Boost:     held(s.state.boost),
		Fire:      held(s.state.fire),
		Enter:     held(s.state.enter),
		Escape:    held(s.state.escape),
		Pressed:   buf,
	}
}

// ResetKeyInput clears all held-key state. Used on screen transitions
// so a key held through the transition does not act on the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case '\x03': // Ctrl+C
		state.quit = now
	case 'w', 'W':
		state.forward = now
	case 's', 'S':
		state.backward = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'r', 'R':
		state.up = now
	case 'f', 'F':
		state.down = now
	case 'q', 'Q':
		state.turnLeft = now
	case 'e', 'E':
		state.turnRight = now
	case 'b', 'B':
		state.boost = now
	case ' ':
		state.fire = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}
