// Package service writes engagement events to clickhouse
package service

import (
	"context"

	perr "interestd/internal/platform/errors"
	"interestd/internal/platform/store"
	"interestd/internal/services/engagement/domain"
)

// Table is the clickhouse table engagement rows land in
const Table = "article_engagement"

// TableDDL creates Table; column order matches row
const TableDDL = `CREATE TABLE IF NOT EXISTS article_engagement (
    article_id String,
    open       UInt8,
    read       UInt8,
    interested UInt8,
    tag_count  UInt16,
    at         DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (article_id, at)`

// CH is a domain.Sink over the clickhouse seam
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs the clickhouse sink
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("engagement.CH requires a clickhouse client")
	}
	return &CH{ch: ch}
}

// EnsureTable creates the engagement table when missing
func EnsureTable(ctx context.Context, ch store.Clickhouse) error {
	if err := ch.Exec(ctx, TableDDL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "engagement: create table")
	}
	return nil
}

// Record implements domain.Sink
func (s *CH) Record(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, row(e))
	}
	if err := s.ch.Insert(ctx, Table, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "engagement: insert")
	}
	return nil
}

func row(e domain.Event) []any {
	tc := e.TagCount
	if tc < 0 {
		tc = 0
	}
	if tc > 65535 {
		tc = 65535
	}
	return []any{e.ArticleID, flag(e.Open), flag(e.Read), flag(e.Interested), uint16(tc), e.At.UTC()}
}

func flag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Nop discards events; used when clickhouse is disabled
type Nop struct{}

// Record implements domain.Sink
func (Nop) Record(context.Context, []domain.Event) error { return nil }
