package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"interestd/internal/core/phe"
	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/testkit"
	tim "interestd/internal/platform/time"
	engagement "interestd/internal/services/engagement/domain"
	"interestd/internal/services/ingest/domain"
	interest "interestd/internal/services/interest/domain"
	irepo "interestd/internal/services/interest/repo"
	isvc "interestd/internal/services/interest/service"
	replay "interestd/internal/services/replay/domain"
	rrepo "interestd/internal/services/replay/repo"
	rsvc "interestd/internal/services/replay/service"
	scoring "interestd/internal/services/scoring/domain"
)

var (
	keysOnce sync.Once
	keys     *phe.Manager
)

func testKeys() *phe.Manager {
	keysOnce.Do(func() {
		m, err := phe.New(phe.Generated{Bits: 256}, phe.Options{MinBits: 256})
		if err != nil {
			panic(err)
		}
		keys = m
	})
	return keys
}

type fakeTags map[string][]int

func (f fakeTags) TagIndices(_ context.Context, id string) ([]int, error) { return f[id], nil }
func (f fakeTags) TagIndicesMany(context.Context, []string) (map[string][]int, error) {
	return nil, nil
}

type fakeWeights struct {
	w     scoring.Weights
	err   error
	calls int
}

func (f *fakeWeights) Weights(context.Context) (scoring.Weights, error) {
	f.calls++
	return f.w, f.err
}

type fakeSink struct {
	rows []engagement.Event
	err  error
}

func (f *fakeSink) Record(_ context.Context, rows []engagement.Event) error {
	f.rows = append(f.rows, rows...)
	return f.err
}

type harness struct {
	svc     *Service
	store   *irepo.Memory
	weights *fakeWeights
	sink    *fakeSink
	clock   *tim.Fake
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := tim.NewFake(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	h := &harness{
		store:   irepo.NewMemory(clock),
		weights: &fakeWeights{w: scoring.DefaultWeights},
		sink:    &fakeSink{},
		clock:   clock,
	}
	tags := fakeTags{"x": {2, 5}, "y": {7}, "untagged": nil}
	acc := isvc.NewWithStore(h.store, testKeys(), tags, isvc.Config{Attempts: 2, BaseDelay: time.Microsecond})
	h.svc = New(Deps{
		Guard:       rsvc.New(rrepo.NewMemory(), h.clock, 0),
		Weights:     h.weights,
		Accumulator: acc,
		Sink:        h.sink,
		Clock:       h.clock,
	})
	return h
}

func (h *harness) value(t *testing.T, user string, idx int) int64 {
	t.Helper()
	e, ok, _ := h.store.Get(context.Background(), user, idx)
	if !ok {
		return 0
	}
	v, err := testKeys().Decrypt(e.Ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	return v
}

func item(article, nonce string, ev scoring.Events) domain.Item {
	return domain.Item{ArticleID: article, Events: &ev, Nonce: nonce}
}

func TestIngest_BatchAppliesAndReportsPerItem(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	resp, err := h.svc.Ingest(context.Background(), "u1", []domain.Item{
		item("x", "nonce-001", scoring.Events{Open: true}),
		item("y", "nonce-002", scoring.Events{Read: true, Interested: true}),
		item("untagged", "nonce-003", scoring.Events{Open: true}),
		item("x", "", scoring.Events{}),
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if !resp.OK || resp.Updated != 3 {
		t.Fatalf("resp = %+v", resp)
	}
	want := []domain.Status{domain.StatusApplied, domain.StatusApplied, domain.StatusSkipped, domain.StatusSkipped}
	for i, s := range want {
		if resp.Items[i].Status != s {
			t.Fatalf("item %d status = %s want %s", i, resp.Items[i].Status, s)
		}
	}
	if h.value(t, "u1", 2) != 1 || h.value(t, "u1", 5) != 1 || h.value(t, "u1", 7) != 3 {
		t.Fatalf("values 2=%d 5=%d 7=%d", h.value(t, "u1", 2), h.value(t, "u1", 5), h.value(t, "u1", 7))
	}
	if h.weights.calls != 1 {
		t.Fatalf("weights read %d times, want once per request", h.weights.calls)
	}
	if len(h.sink.rows) != 2 || h.sink.rows[0].TagCount != 2 || !h.sink.rows[1].Read {
		t.Fatalf("engagement rows = %+v", h.sink.rows)
	}
}

func TestIngest_ReplayedSingleItemIsConflictWithoutChange(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	it := []domain.Item{item("x", "nonce-abc", scoring.Events{Open: true})}

	if _, err := h.svc.Ingest(ctx, "u1", it); err != nil {
		t.Fatalf("first: %v", err)
	}
	before, _, _ := h.store.Get(ctx, "u1", 2)

	resp, err := h.svc.Ingest(ctx, "u1", it)
	if !errors.Is(err, replay.ErrReplayRejected) || perr.HTTPStatus(err) != 409 {
		t.Fatalf("want 409 replay, got %v", err)
	}
	if resp.Items[0].Status != domain.StatusDuplicate || resp.Items[0].Code != perr.ErrorCodeConflict {
		t.Fatalf("item = %+v", resp.Items[0])
	}
	after, _, _ := h.store.Get(ctx, "u1", 2)
	if after.Version != before.Version || h.value(t, "u1", 2) != 1 {
		t.Fatalf("replay changed the accumulator: %+v -> %+v", before, after)
	}

	h.clock.Advance(10 * time.Minute)
	if _, err := h.svc.Ingest(ctx, "u1", it); err != nil {
		t.Fatalf("after window: %v", err)
	}
	if h.value(t, "u1", 2) != 2 {
		t.Fatalf("nonce should be usable after the window")
	}
}

func TestIngest_DuplicateInsideBatchRejectsOnlyThatItem(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	resp, err := h.svc.Ingest(context.Background(), "u1", []domain.Item{
		item("x", "nonce-same", scoring.Events{Open: true}),
		item("y", "nonce-same", scoring.Events{Open: true}),
		item("y", "nonce-other", scoring.Events{Open: true}),
	})
	if err != nil {
		t.Fatalf("partial duplicates must not fail the request: %v", err)
	}
	got := []domain.Status{resp.Items[0].Status, resp.Items[1].Status, resp.Items[2].Status}
	want := []domain.Status{domain.StatusApplied, domain.StatusDuplicate, domain.StatusApplied}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("statuses = %v want %v", got, want)
		}
	}
	if h.value(t, "u1", 7) != 1 {
		t.Fatalf("index 7 = %d want 1", h.value(t, "u1", 7))
	}
}

func TestIngest_AllDuplicateBatchIsConflict(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	batch := []domain.Item{item("x", "nonce-b1", scoring.Events{Open: true}), item("y", "nonce-b2", scoring.Events{Open: true})}
	_, _ = h.svc.Ingest(ctx, "u1", batch)
	resp, err := h.svc.Ingest(ctx, "u1", batch)
	if !perr.IsCode(err, perr.ErrorCodeConflict) || resp.Updated != 0 {
		t.Fatalf("resp=%+v err=%v", resp, err)
	}
	if _, err := h.svc.Ingest(ctx, "u2", batch); err != nil {
		t.Fatalf("nonces belong to the user: %v", err)
	}
}

func TestIngest_WeightsUnavailableBurnsNoNonce(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	h.weights.err = perr.Unavailablef("settings down")
	it := []domain.Item{item("x", "nonce-w1", scoring.Events{Open: true})}
	if _, err := h.svc.Ingest(ctx, "u1", it); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	h.weights.err = nil
	if _, err := h.svc.Ingest(ctx, "u1", it); err != nil {
		t.Fatalf("retry after outage: %v", err)
	}
}

func TestIngest_SinkFailureIsInvisible(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.sink.err = errors.New("ch down")
	resp, err := h.svc.Ingest(context.Background(), "u1", []domain.Item{item("x", "", scoring.Events{Open: true})})
	if err != nil || resp.Updated != 2 {
		t.Fatalf("resp=%+v err=%v", resp, err)
	}
}

type failingAcc struct{}

func (failingAcc) ApplyEvent(context.Context, string, string, scoring.Events, scoring.Weights) (interest.Result, error) {
	return interest.Result{}, perr.Unavailablef("store down")
}

func (failingAcc) Interests(context.Context, string) (map[int]int64, error) { return nil, nil }

func TestIngest_DependencyFailureMarksItemFailed(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	svc := New(Deps{Guard: rsvc.New(rrepo.NewMemory(), h.clock, 0), Weights: h.weights, Accumulator: failingAcc{}})
	resp, err := svc.Ingest(context.Background(), "u1", []domain.Item{item("x", "nonce-f1", scoring.Events{Open: true})})
	if err != nil {
		t.Fatalf("dependency failures are reported per item: %v", err)
	}
	if resp.Items[0].Status != domain.StatusFailed || resp.Items[0].Code != perr.ErrorCodeUnavailable {
		t.Fatalf("item = %+v", resp.Items[0])
	}
}

func TestIngest_RejectsBadCalls(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()
	if _, err := h.svc.Ingest(ctx, "", []domain.Item{item("x", "", scoring.Events{Open: true})}); perr.HTTPStatus(err) != 401 {
		t.Fatalf("anonymous: %v", err)
	}
	if _, err := h.svc.Ingest(ctx, "u1", nil); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty: %v", err)
	}
	big := make([]domain.Item, domain.MaxBatch+1)
	if _, err := h.svc.Ingest(ctx, "u1", big); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("oversized: %v", err)
	}
	testkit.MustPanic(t, func() { New(Deps{}) })
}
