package emitter

import (
	"sync"
	"time"

	tim "interestd/internal/platform/time"
)

// ScrollFunc reports how far the reader has scrolled, 0 to 1
// a document shorter than the viewport should report 1
type ScrollFunc func() float64

// ReadTracker fires one read for an article once dwell time and scroll depth are both reached
type ReadTracker struct {
	e         *Emitter
	articleID string
	scrolled  ScrollFunc
	started   time.Time

	mu      sync.Mutex
	timer   tim.Timer
	fired   bool
	stopped bool
}

// TrackRead starts polling for a read of articleID
// the caller stops the tracker when the view goes away
func (e *Emitter) TrackRead(articleID string, scrolled ScrollFunc) *ReadTracker {
	t := &ReadTracker{e: e, articleID: articleID, scrolled: scrolled, started: e.clock.Now()}
	t.mu.Lock()
	t.schedule()
	t.mu.Unlock()
	return t
}

// schedule arms the next poll; caller holds mu
func (t *ReadTracker) schedule() {
	poll := t.e.cfg.Poll
	if poll <= 0 {
		poll = time.Second
	}
	t.timer = t.e.clock.AfterFunc(poll, t.tick)
}

func (t *ReadTracker) tick() {
	t.mu.Lock()
	if t.fired || t.stopped {
		t.mu.Unlock()
		return
	}
	dwelled := t.e.clock.Now().Sub(t.started) >= t.e.cfg.Dwell
	if !dwelled || t.scrolled() < t.e.cfg.Scroll {
		t.schedule()
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()
	t.e.EmitRead(t.articleID)
}

// Fired reports whether the read was emitted
func (t *ReadTracker) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Stop cancels polling; a read already emitted stays emitted
func (t *ReadTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
