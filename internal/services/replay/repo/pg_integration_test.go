//go:build integration_pg

package repo_test

import (
	"context"
	"testing"
	"time"

	"interestd/internal/platform/store/pgtest"
	"interestd/internal/services/replay/repo"
)

func TestPG_ClaimAndSweep(t *testing.T) {
	db := pgtest.Start(t)
	st := repo.NewPG().Bind(db)
	ctx := context.Background()
	t0 := time.Now().UTC().Truncate(time.Second)
	exp := t0.Add(10 * time.Minute)

	if ok, err := st.Claim(ctx, "u1", "nonce-001", t0, exp); !ok || err != nil {
		t.Fatalf("first claim ok=%v err=%v", ok, err)
	}
	if ok, _ := st.Claim(ctx, "u1", "nonce-001", t0.Add(time.Minute), exp); ok {
		t.Fatalf("live duplicate accepted")
	}
	if ok, _ := st.Claim(ctx, "u1", "nonce-001", exp.Add(time.Second), exp.Add(11*time.Minute)); !ok {
		t.Fatalf("expired record should be reclaimable")
	}

	_, _ = st.Claim(ctx, "u1", "nonce-002", t0, t0.Add(time.Second))
	n, err := st.Sweep(ctx, t0.Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("sweep n=%d err=%v", n, err)
	}
}
