package version

import "testing"

func TestInfo_DefaultsAndService(t *testing.T) {
	t.Parallel()
	bi := Info("")
	if bi.Service != "interestd-api" {
		t.Fatalf("default service = %q", bi.Service)
	}
	if bi.Version != "dev" || bi.Commit != "none" || bi.Date != "unknown" {
		t.Fatalf("unexpected ldflag defaults: %+v", bi)
	}
	if got := Info("interestctl").Service; got != "interestctl" {
		t.Fatalf("service = %q", got)
	}
}
