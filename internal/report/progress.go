package report

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
)

// DefaultRefresh is how often the progress bar is redrawn at most
const DefaultRefresh = 100 * time.Millisecond

// Progress draws a single-line progress bar. Update is safe for concurrent
// use and can be passed directly as a simulator.ProgressFunc.
type Progress struct {
	mu       sync.Mutex
	w        io.Writer
	bar      progress.Model
	clock    quartz.Clock
	interval time.Duration
	last     time.Time
	drawn    bool
	finished bool
}

// NewProgress creates a progress bar writing to w, usually stderr
func NewProgress(w io.Writer, clock quartz.Clock, plain bool) *Progress {
	if clock == nil {
		clock = quartz.NewReal()
	}
	opts := []progress.Option{progress.WithWidth(40)}
	if plain {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	return &Progress{
		w:        w,
		bar:      progress.New(opts...),
		clock:    clock,
		interval: DefaultRefresh,
	}
}

// Update redraws the bar unless it was drawn within the refresh interval.
// The final update is always drawn.
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished || total <= 0 {
		return
	}
	now := p.clock.Now()
	if p.drawn && done < total && now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	p.drawn = true

	fmt.Fprintf(p.w, "\r%s %d/%d games", p.bar.ViewAs(float64(done)/float64(total)), done, total)
	if done >= total {
		p.finished = true
		fmt.Fprintln(p.w)
	}
}

// Finish ends the line if the bar was interrupted before completion
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drawn && !p.finished {
		fmt.Fprintln(p.w)
	}
	p.finished = true
}
