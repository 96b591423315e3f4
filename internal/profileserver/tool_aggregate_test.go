package profileserver

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anatolykoptev/go-kit/llm"

	"github.com/jokobus/go_profile/internal/engine"
	"github.com/jokobus/go_profile/internal/store"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "go_profile_test")
	if err != nil {
		os.Exit(1)
	}
	store.SetAuditPath(filepath.Join(dir, "audit.db"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fixedOracle struct {
	response string
	calls    int
}

func (f *fixedOracle) Complete(_ context.Context, _, _ string, _ ...llm.ChatOption) (string, error) {
	f.calls++
	return f.response, nil
}

func initAggregateTest(t *testing.T, f *fixedOracle) {
	t.Helper()
	engine.Init(engine.Config{LLMClient: f})
	engine.InitCache("", time.Minute, 100, time.Minute)
}

func TestAggregateProfile_BadBase64(t *testing.T) {
	initAggregateTest(t, &fixedOracle{})

	if _, err := aggregateProfile(context.Background(), ProfileAggregateInput{ResumePDFB64: "%%%not-base64%%%"}); err == nil {
		t.Fatal("expected error for invalid base64 input")
	}
}

func TestAggregateProfile_DegradedRunNotCached(t *testing.T) {
	f := &fixedOracle{}
	initAggregateTest(t, f)

	// Bytes that are not a PDF make the resume extractor fail; the failure
	// is absorbed and reported, never fatal.
	input := ProfileAggregateInput{
		ResumePDFB64: base64.StdEncoding.EncodeToString([]byte("not a pdf")),
	}
	out, err := aggregateProfile(context.Background(), input)
	if err != nil {
		t.Fatalf("aggregateProfile: %v", err)
	}
	if len(out.SourceErrors) != 1 {
		t.Fatalf("source errors = %v, want exactly one", out.SourceErrors)
	}
	if f.calls != 0 {
		t.Errorf("oracle consulted %d times with no extracted sources", f.calls)
	}

	// The degraded result must not be replayed from cache on retry.
	key := engine.CacheKey("profile_aggregate", "not a pdf", "", "")
	if _, ok := engine.CacheLoadJSON[ProfileAggregateOutput](context.Background(), key); ok {
		t.Error("degraded run was cached")
	}
}

func TestAggregateProfile_CleanRunCached(t *testing.T) {
	initAggregateTest(t, &fixedOracle{})

	out, err := aggregateProfile(context.Background(), ProfileAggregateInput{})
	if err != nil {
		t.Fatalf("aggregateProfile: %v", err)
	}
	if out.RunID == "" || out.Profile == nil {
		t.Fatalf("incomplete output: %+v", out)
	}
	if len(out.SourceErrors) != 0 {
		t.Fatalf("unexpected source errors: %v", out.SourceErrors)
	}

	key := engine.CacheKey("profile_aggregate", "", "", "")
	cached, ok := engine.CacheLoadJSON[ProfileAggregateOutput](context.Background(), key)
	if !ok {
		t.Fatal("clean run was not cached")
	}
	if cached.RunID != out.RunID {
		t.Errorf("cached run id %q, want %q", cached.RunID, out.RunID)
	}
}
