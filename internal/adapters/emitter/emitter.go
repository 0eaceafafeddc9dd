// Package emitter batches client observed engagement and posts it to the score endpoint
// delivery is fire and forget: failures are logged and dropped, never retried
package emitter

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"interestd/internal/platform/logger"
	tim "interestd/internal/platform/time"
	ingest "interestd/internal/services/ingest/domain"
	scoring "interestd/internal/services/scoring/domain"
)

// Emitter owns the pending map and the debounce timer
// safe for concurrent use
type Emitter struct {
	cfg    Config
	clock  tim.Clock
	client *resty.Client
	nonce  func() string

	mu      sync.Mutex
	pending map[string]scoring.Events
	timer   tim.Timer

	inflight sync.WaitGroup
}

// Option customizes an Emitter
type Option func(*Emitter)

// WithClient swaps the resty client, mainly for tests
func WithClient(c *resty.Client) Option { return func(e *Emitter) { e.client = c } }

// WithNonce swaps the nonce source
func WithNonce(fn func() string) Option { return func(e *Emitter) { e.nonce = fn } }

// New builds an emitter; clock nil means the wall clock
func New(cfg Config, clock tim.Clock, opts ...Option) *Emitter {
	if clock == nil {
		clock = tim.Real()
	}
	e := &Emitter{
		cfg:     cfg,
		clock:   clock,
		nonce:   uuid.NewString,
		pending: map[string]scoring.Events{},
	}
	for _, o := range opts {
		o(e)
	}
	if e.client == nil {
		e.client = resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.Timeout)
	}
	if cfg.Token != "" {
		e.client.SetAuthToken(cfg.Token)
	}
	return e
}

// EmitOpen records that the article was viewed
func (e *Emitter) EmitOpen(articleID string) { e.emit(articleID, scoring.Events{Open: true}) }

// EmitRead records that the article was read
func (e *Emitter) EmitRead(articleID string) { e.emit(articleID, scoring.Events{Read: true}) }

// EmitInterested records an explicit interest action; repeats coalesce
func (e *Emitter) EmitInterested(articleID string) {
	e.emit(articleID, scoring.Events{Interested: true})
}

// Emit records an arbitrary flag set
func (e *Emitter) Emit(articleID string, ev scoring.Events) { e.emit(articleID, ev) }

func (e *Emitter) emit(articleID string, ev scoring.Events) {
	if articleID == "" || !ev.Any() {
		return
	}
	if e.cfg.immediate() {
		e.send(ingest.Request{
			ArticleID: articleID,
			Events:    &ev,
			Nonce:     e.nonce(),
			TS:        e.ts(),
		})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending[articleID] = e.pending[articleID].Merge(ev)
	if e.timer == nil {
		e.timer = e.clock.AfterFunc(e.cfg.Window, e.Flush)
	}
}

// Pending returns the number of articles waiting for the next flush
func (e *Emitter) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Flush sends everything pending as one batch, each item with its own nonce
func (e *Emitter) Flush() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	pending := e.pending
	e.pending = map[string]scoring.Events{}
	e.mu.Unlock()

	if len(pending) == 0 {
		return
	}
	ids := make([]string, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ts := e.ts()
	for start := 0; start < len(ids); start += ingest.MaxBatch {
		end := min(start+ingest.MaxBatch, len(ids))
		batch := make([]ingest.Item, 0, end-start)
		for _, id := range ids[start:end] {
			ev := pending[id]
			batch = append(batch, ingest.Item{ArticleID: id, Events: &ev, Nonce: e.nonce(), TS: ts})
		}
		e.send(ingest.Request{Batch: batch})
	}
}

// Close flushes what is pending and waits for in flight posts until ctx ends
// events emitted after a teardown without Close are lost
func (e *Emitter) Close(ctx context.Context) error {
	e.Flush()
	done := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Emitter) ts() *float64 {
	ms := float64(e.clock.Now().UnixMilli())
	return &ms
}

func (e *Emitter) send(body ingest.Request) {
	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()
		log := logger.Named("emitter")
		resp, err := e.client.R().SetBody(body).Post(ScorePath)
		if err != nil {
			log.Debug().Err(err).Msg("score post failed; dropped")
			return
		}
		if resp.StatusCode() != http.StatusOK {
			log.Debug().Int("status", resp.StatusCode()).Msg("score post rejected; dropped")
		}
	}()
}
