package module

import (
	"context"
	"testing"

	"interestd/internal/core/phe"
	"interestd/internal/modkit"
	"interestd/internal/platform/config"
	"interestd/internal/platform/testkit"
	scoring "interestd/internal/services/scoring/domain"
)

type tags map[string][]int

func (t tags) TagIndices(_ context.Context, id string) ([]int, error) { return t[id], nil }

func (t tags) TagIndicesMany(_ context.Context, ids []string) (map[string][]int, error) {
	out := map[string][]int{}
	for _, id := range ids {
		if xs := t[id]; len(xs) > 0 {
			out[id] = xs
		}
	}
	return out, nil
}

func TestNew_WithoutPostgresKeepsEntriesInMemory(t *testing.T) {
	keys, err := phe.New(phe.Generated{Bits: 256}, phe.Options{MinBits: 256})
	if err != nil {
		t.Fatal(err)
	}
	m := New(modkit.Deps{Cfg: config.New(), Keys: keys},
		modkit.WithPorts(Needs{Tags: tags{"a-1": {1, 4}}}))
	acc := m.Ports().(Ports).Accumulator

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := acc.ApplyEvent(ctx, "u1", "a-1", scoring.Events{Read: true}, scoring.DefaultWeights); err != nil {
			t.Fatalf("ApplyEvent: %v", err)
		}
	}
	got, err := acc.Interests(ctx, "u1")
	if err != nil {
		t.Fatalf("Interests: %v", err)
	}
	if got[1] != 4 || got[4] != 4 {
		t.Fatalf("interests = %v", got)
	}
}

func TestNew_RequiresTags(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New()}) })
}
