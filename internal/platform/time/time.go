// Package time contains time helpers and the Clock seam used by ttl and debounce code
package time

import "time"

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Clock abstracts the wall clock and one-shot timers
// production code takes Real(); tests drive a Fake
type Clock interface {
	Now() time.Time
	// AfterFunc calls f once d has elapsed, returning a stopper
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer cancels a pending AfterFunc
type Timer interface {
	// Stop reports whether the call prevented f from running
	Stop() bool
}

// Real returns a Clock backed by the time package
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
