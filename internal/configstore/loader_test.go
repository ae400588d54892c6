package configstore

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync/atomic"
	"testing"

	"github.com/waynenilsen/safeworkout/internal/domain/profile"
)

type fakeSource struct {
	rows    []Row
	err     error
	fetches int32
}

func (f *fakeSource) FetchRows(ctx context.Context) ([]Row, error) {
	atomic.AddInt32(&f.fetches, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func phasesJSON(t *testing.T, phases []PhaseConfig) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(phases)
	if err != nil {
		t.Fatalf("marshal phases: %v", err)
	}
	return data
}

func silentDiag() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLoader_LoadNormalizesRows(t *testing.T) {
	phases := []PhaseConfig{
		{Start: 0, End: 6, BlockedPatterns: []string{"push"}},
		{Start: 6, End: 1e9},
	}
	src := &fakeSource{rows: []Row{
		{Category: CategoryPostOp, SubKey: string(profile.SurgeryTopSurgery), Config: phasesJSON(t, phases), IsActive: true},
	}}
	loader := NewLoader(src, silentDiag())

	cfg := loader.Load(context.Background())
	got := cfg.PostOp(profile.SurgeryTopSurgery)
	if len(got) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(got))
	}
	if !got[0].HasCriticalExclusions() {
		t.Error("expected first phase to carry critical exclusions")
	}
}

func TestLoader_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{rows: nil}
	loader := NewLoader(src, silentDiag())

	loader.Load(context.Background())
	loader.Load(context.Background())

	if src.fetches != 1 {
		t.Errorf("expected 1 fetch within TTL, got %d", src.fetches)
	}
}

func TestLoader_ClearCacheForcesRefetch(t *testing.T) {
	src := &fakeSource{rows: nil}
	loader := NewLoader(src, silentDiag())

	loader.Load(context.Background())
	loader.ClearCache()
	loader.Load(context.Background())

	if src.fetches != 2 {
		t.Errorf("expected 2 fetches after ClearCache, got %d", src.fetches)
	}
}

func TestLoader_FallsBackToBuiltinDefaultsOnFirstFetchFailure(t *testing.T) {
	src := &fakeSource{err: errFetch}
	loader := NewLoader(src, silentDiag())

	cfg := loader.Load(context.Background())
	if cfg == nil {
		t.Fatal("expected non-nil fallback config")
	}
	if len(cfg.HRTEstrogenPhases) == 0 {
		t.Error("expected built-in estrogen phase table as fallback")
	}
}

func TestLoader_FallsBackToLastGoodConfigOnSubsequentFailure(t *testing.T) {
	phases := []PhaseConfig{{Start: 0, End: 3, BlockedPatterns: []string{"cardio"}}}
	src := &fakeSource{rows: []Row{
		{Category: CategoryPostOp, SubKey: string(profile.SurgeryOrchiectomy), Config: phasesJSON(t, phases), IsActive: true},
	}}
	loader := NewLoader(src, silentDiag())
	loader.Load(context.Background())

	src.rows = nil
	src.err = errFetch
	loader.ClearCache()

	cfg := loader.Load(context.Background())
	got := cfg.PostOp(profile.SurgeryOrchiectomy)
	if len(got) != 1 || got[0].BlockedPatterns[0] != "cardio" {
		t.Errorf("expected last known good post-op config preserved, got %+v", got)
	}
}

func TestDedupeOverlaps_KeepsFirstAndDropsOverlapping(t *testing.T) {
	phases := []PhaseConfig{
		{Start: 0, End: 6, BlockedPatterns: []string{"push"}},
		{Start: 4, End: 10, BlockedPatterns: []string{"pull"}},
		{Start: 6, End: 12},
	}
	kept := dedupeOverlaps(phases, silentDiag(), "test_table")
	if len(kept) != 2 {
		t.Fatalf("expected 2 non-overlapping phases kept, got %d", len(kept))
	}
	if kept[0].BlockedPatterns[0] != "push" {
		t.Errorf("expected first phase kept, got %+v", kept[0])
	}
}

var errFetch = &fetchError{"store unreachable"}

type fetchError struct{ msg string }

func (e *fetchError) Error() string { return e.msg }
