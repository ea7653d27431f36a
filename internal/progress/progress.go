// Package progress reports the advance of long-running pipeline stages.
package progress

import (
	"sync"

	"github.com/gosuri/uiprogress"
)

// Reporter receives stage boundaries and per-item ticks.
type Reporter interface {
	Start(stage string, total int)
	Incr()
	Stop()
}

// Nop returns a Reporter that does nothing.
func Nop() Reporter { return nop{} }

type nop struct{}

func (nop) Start(string, int) {}

func (nop) Incr() {}

func (nop) Stop() {}

// Bars renders one terminal progress bar per stage.
type Bars struct {
	mu  sync.Mutex
	p   *uiprogress.Progress
	bar *uiprogress.Bar
}

// NewBars creates a terminal Reporter.
func NewBars() *Bars {
	return &Bars{}
}

// Start stops any running bar and begins a new one for stage.
func (b *Bars) Start(stage string, total int) {
	b.Stop()
	if total <= 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = uiprogress.New()
	b.bar = b.p.AddBar(total)
	b.bar.AppendCompleted()
	b.bar.PrependElapsed()
	b.bar.PrependFunc(func(*uiprogress.Bar) string { return stage })
	b.p.Start()
}

// Incr advances the current bar by one.
func (b *Bars) Incr() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Incr()
	}
}

// Stop renders the final state of the current bar and releases it.
func (b *Bars) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.p == nil {
		return
	}
	b.p.Stop()
	b.p, b.bar = nil, nil
}
