package time

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestPtr(t *testing.T) {
	t.Parallel()
	if Ptr(time.Time{}) != nil {
		t.Fatalf("zero time should map to nil")
	}
	if p := Ptr(epoch); p == nil || !p.Equal(epoch) {
		t.Fatalf("non zero time should round trip, got %v", p)
	}
}

func TestFake_NowAndAdvance(t *testing.T) {
	t.Parallel()
	c := NewFake(epoch)
	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(epoch.Add(90 * time.Second)) {
		t.Fatalf("Now = %v", got)
	}
}

func TestFake_AfterFuncFiresInOrder(t *testing.T) {
	t.Parallel()
	c := NewFake(epoch)
	var order []int
	c.AfterFunc(3*time.Second, func() { order = append(order, 3) })
	c.AfterFunc(1*time.Second, func() { order = append(order, 1) })
	c.AfterFunc(2*time.Second, func() { order = append(order, 2) })

	c.Advance(1500 * time.Millisecond)
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("after 1.5s got %v", order)
	}
	c.Advance(2 * time.Second)
	if len(order) != 3 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("after 3.5s got %v", order)
	}
	if c.Pending() != 0 {
		t.Fatalf("pending = %d", c.Pending())
	}
}

func TestFake_StopPreventsFire(t *testing.T) {
	t.Parallel()
	c := NewFake(epoch)
	fired := false
	tm := c.AfterFunc(time.Second, func() { fired = true })
	if !tm.Stop() {
		t.Fatalf("first Stop should report true")
	}
	if tm.Stop() {
		t.Fatalf("second Stop should report false")
	}
	c.Advance(time.Minute)
	if fired {
		t.Fatalf("stopped timer fired")
	}
}

func TestFake_NonPositiveRunsImmediately(t *testing.T) {
	t.Parallel()
	c := NewFake(epoch)
	fired := false
	tm := c.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Fatalf("zero duration should fire synchronously")
	}
	if tm.Stop() {
		t.Fatalf("Stop after fire should report false")
	}
}

func TestReal_ImplementsClock(t *testing.T) {
	t.Parallel()
	var c Clock = Real()
	if c.Now().IsZero() {
		t.Fatalf("real clock returned zero time")
	}
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("real AfterFunc did not fire")
	}
}
