// Package service runs ingestion: replay check, weighting, accumulation, engagement
package service

import (
	"context"

	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/logger"
	tim "interestd/internal/platform/time"
	engagement "interestd/internal/services/engagement/domain"
	"interestd/internal/services/ingest/domain"
	interest "interestd/internal/services/interest/domain"
	replay "interestd/internal/services/replay/domain"
	scoring "interestd/internal/services/scoring/domain"
	taxonomy "interestd/internal/services/taxonomy/service"
)

// Deps are the collaborators ingestion drives
type Deps struct {
	Guard       replay.GuardPort
	Weights     scoring.ReaderPort
	Accumulator interest.AccumulatorPort
	// Sink is optional; nil discards engagement rows
	Sink  engagement.Sink
	Clock tim.Clock
}

// Service implements domain.IngestPort
type Service struct {
	d Deps
}

// New constructs the ingest service; Guard, Weights and Accumulator are required
func New(d Deps) *Service {
	if d.Guard == nil || d.Weights == nil || d.Accumulator == nil {
		panic("ingest.Service requires Guard, Weights and Accumulator")
	}
	if d.Clock == nil {
		d.Clock = tim.Real()
	}
	return &Service{d: d}
}

// Ingest implements domain.IngestPort
// items are independent: a duplicate or failed item never blocks the others
func (s *Service) Ingest(ctx context.Context, userID string, items []domain.Item) (domain.Response, error) {
	if userID == "" {
		return domain.Response{}, perr.Unauthorizedf("ingest: user identity required")
	}
	if len(items) == 0 {
		return domain.Response{}, perr.WithField(perr.Validationf("no items"), "batch")
	}
	if len(items) > domain.MaxBatch {
		return domain.Response{}, perr.WithField(perr.Validationf("batch exceeds %d items", domain.MaxBatch), "batch")
	}

	// one snapshot per request so every item is weighted alike
	w, err := s.d.Weights.Weights(ctx)
	if err != nil {
		return domain.Response{}, err
	}

	log := logger.C(ctx)
	resp := domain.Response{OK: true, Items: make([]domain.ItemResult, 0, len(items))}
	var (
		rows       []engagement.Event
		duplicates int
	)
	for _, it := range items {
		r := domain.ItemResult{ArticleID: taxonomy.NormalizeArticleID(it.ArticleID)}
		var ev scoring.Events
		if it.Events != nil {
			ev = *it.Events
		}

		accepted, err := s.d.Guard.CheckAndRecord(ctx, userID, it.Nonce)
		switch {
		case err != nil:
			r.Status, r.Code = domain.StatusFailed, perr.CodeOf(err)
			log.Warn().Err(err).Stringer("code", r.Code).Str("article_id", r.ArticleID).Msg("replay check failed; item dropped")
			itemsTotal.WithLabelValues(string(r.Status)).Inc()
			resp.Items = append(resp.Items, r)
			continue
		case !accepted:
			duplicates++
			r.Status, r.Code = domain.StatusDuplicate, perr.ErrorCodeConflict
			itemsTotal.WithLabelValues(string(r.Status)).Inc()
			resp.Items = append(resp.Items, r)
			continue
		}

		res, err := s.d.Accumulator.ApplyEvent(ctx, userID, r.ArticleID, ev, w)
		switch {
		case err != nil:
			r.Status, r.Code = domain.StatusFailed, perr.CodeOf(err)
			log.Warn().Err(err).Stringer("code", r.Code).Str("article_id", r.ArticleID).Msg("interest update failed; event dropped")
		case res.Updated == 0 && len(res.Failed) == 0:
			r.Status = domain.StatusSkipped
		default:
			r.Status, r.Updated = domain.StatusApplied, res.Updated
			resp.Updated += res.Updated
			rows = append(rows, engagement.Event{
				ArticleID:  r.ArticleID,
				Open:       ev.Open,
				Read:       ev.Read,
				Interested: ev.Interested,
				TagCount:   res.Updated + len(res.Failed),
				At:         s.d.Clock.Now(),
			})
		}
		itemsTotal.WithLabelValues(string(r.Status)).Inc()
		resp.Items = append(resp.Items, r)
	}

	if len(rows) > 0 && s.d.Sink != nil {
		if err := s.d.Sink.Record(ctx, rows); err != nil {
			log.Warn().Err(err).Int("rows", len(rows)).Msg("engagement sink failed")
		}
	}

	if duplicates == len(items) {
		return resp, replay.ErrReplayRejected
	}
	return resp, nil
}
