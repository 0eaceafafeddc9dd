package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interestd/internal/platform/store"
)

type recExec struct {
	sqls   []string
	failOn int
}

func (r *recExec) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.sqls = append(r.sqls, sql)
	if r.failOn > 0 && len(r.sqls) == r.failOn {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func TestFiles_Ordered(t *testing.T) {
	t.Parallel()
	got := Files()
	if len(got) != 2 || got[0] != "0001_interest.sql" || got[1] != "0002_taxonomy.sql" {
		t.Fatalf("files = %v", got)
	}
}

func TestApply_RunsAllInOrder(t *testing.T) {
	t.Parallel()
	r := &recExec{}
	if err := Apply(context.Background(), r); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(r.sqls) != 2 || !strings.Contains(r.sqls[0], "interest_entries") || !strings.Contains(r.sqls[1], "article_tags") {
		t.Fatalf("unexpected statements: %d", len(r.sqls))
	}
}

func TestApply_StopsOnError(t *testing.T) {
	t.Parallel()
	r := &recExec{failOn: 1}
	err := Apply(context.Background(), r)
	if err == nil || !strings.Contains(err.Error(), "0001_interest.sql") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
	if len(r.sqls) != 1 {
		t.Fatalf("should stop after first failure")
	}
}
