package net_test

import (
	"context"
	"testing"

	pnet "interestd/internal/platform/net"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := pnet.WithRequest(context.Background(), "req-1")
	ctx = pnet.WithRole(pnet.WithUser(ctx, "u-1"), pnet.RoleTrainer)
	if pnet.RequestID(ctx) != "req-1" || pnet.UserID(ctx) != "u-1" || pnet.Role(ctx) != pnet.RoleTrainer {
		t.Fatalf("got %q %q %q", pnet.RequestID(ctx), pnet.UserID(ctx), pnet.Role(ctx))
	}
	if !pnet.HasRole(ctx, pnet.RoleAdmin, pnet.RoleTrainer) || pnet.HasRole(ctx, pnet.RoleAdmin) {
		t.Fatal("HasRole mismatch")
	}
}

func TestEmptyValuesLeaveContext(t *testing.T) {
	t.Parallel()
	base := context.Background()
	if pnet.WithRequest(base, "") != base || pnet.WithUser(base, "") != base || pnet.WithRole(base, "") != base {
		t.Fatal("empty value changed the context")
	}
	if pnet.HasRole(base) || pnet.HasRole(base, pnet.RoleUser) {
		t.Fatal("anonymous context has a role")
	}
}
