// Package ui holds small terminal niceties layered on top of the core
// engine — an ambient UX concern, not part of the pipeline traversal core.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner shows a Braille-frame spinner on stderr while a blocking operation runs.
// Stop must be called exactly once to clear the line and release the
// goroutine driving the animation. No-ops entirely when stderr is not a
// terminal.
type Spinner struct {
	stop chan struct{}
	done chan struct{}
}

// Start begins animating message on stderr. Returns a Spinner whose Stop
// method must be called when the blocking operation finishes.
func Start(message string) *Spinner {
	s := &Spinner{stop: make(chan struct{}), done: make(chan struct{})}

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		close(s.done)
		return s
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		idx := 0
		for {
			select {
			case <-s.stop:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%c %s", frames[idx%len(frames)], message)
				idx++
			}
		}
	}()

	return s
}

// Stop halts the spinner animation and waits for its line to clear.
func (s *Spinner) Stop() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.stop)
	<-s.done
}
