package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-insight/internal/backend"
	"resume-insight/internal/enrich"
	"resume-insight/internal/notify"
	"resume-insight/internal/session"
	"resume-insight/pkg/httpclient"
)

type fixture struct {
	pipeline  *Pipeline
	store     *session.Store
	messenger *notify.Messenger
	enricher  *enrich.Orchestrator
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore()
	messenger := notify.NewMessenger()
	bc := backend.NewClient(srv.URL, "", httpclient.New(0), 0)
	enricher := enrich.NewOrchestrator(bc, store, messenger, 0)
	return &fixture{
		pipeline:  NewPipeline(bc, store, messenger, enricher, 0),
		store:     store,
		messenger: messenger,
		enricher:  enricher,
	}
}

func TestIngestNoFile(t *testing.T) {
	called := false
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := f.pipeline.Ingest(context.Background(), "", nil)
	if !errors.Is(err, ErrNoFile) {
		t.Fatalf("want ErrNoFile, got %v", err)
	}
	if called {
		t.Error("no network call may be made without a file")
	}
	if len(f.store.History()) != 0 {
		t.Error("no history entry may be created")
	}
	msgs := f.messenger.Messages()
	if len(msgs) != 1 || msgs[0].Kind != notify.Error {
		t.Errorf("messages = %+v, want one error", msgs)
	}
}

func TestIngestSuccessStoresAndEnriches(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/upload_resume":
			w.Write([]byte(`{
				"data": {
					"name": "Ada Lovelace",
					"github": "https://github.com/ada/",
					"leetcode": "ada",
					"education": {"degree": "B.E"},
					"skills": {"technical": ["Go"]}
				},
				"ats_score": 82,
				"word_count": 412
			}`))
		case strings.HasPrefix(r.URL.Path, "/analyze_leetcode/"):
			w.Write([]byte(`{"profile":{"Total_Solved":200}}`))
		case strings.HasPrefix(r.URL.Path, "/analyze_github/"):
			if !strings.HasSuffix(r.URL.Path, "/ada") {
				t.Errorf("github username not extracted from URL: %s", r.URL.Path)
			}
			w.Write([]byte(`{"username":"ada","github_metrics":{}}`))
		default:
			t.Errorf("unexpected call to %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	rec, err := f.pipeline.Ingest(context.Background(), "ada.pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != "Ada Lovelace" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.ATSScore == nil || *rec.ATSScore != 82 {
		t.Errorf("ats_score = %v", rec.ATSScore)
	}
	if rec.WordCount == nil || *rec.WordCount != 412 {
		t.Errorf("word_count = %v", rec.WordCount)
	}
	if rec.Education.Degree != "B.E" || rec.Education.University != "" {
		t.Errorf("education merge off: %+v", rec.Education)
	}

	history := f.store.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Filename != "ada.pdf" || history[0].Status != session.StatusSuccess {
		t.Errorf("entry = %+v", history[0])
	}
	if history[0].ATSScore == nil || *history[0].ATSScore != 82 {
		t.Error("denormalized ats_score missing from entry")
	}

	// CodeChef has no handle, so only two lookups run.
	f.enricher.Wait()
	active := f.store.Active()
	if active.LeetCodeStats == nil || active.GitHubStats == nil {
		t.Error("enrichment slots not populated")
	}
	if active.CodeChefStats != nil {
		t.Error("codechef slot populated without a handle")
	}
}

func TestIngestServerReportedError(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"could not read PDF"}`))
	}))

	_, err := f.pipeline.Ingest(context.Background(), "broken.pdf", strings.NewReader("x"))
	var serverErr *backend.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("want ServerError, got %v", err)
	}
	if len(f.store.History()) != 0 {
		t.Error("failed upload must not create a history entry")
	}
	msgs := f.messenger.Messages()
	if len(msgs) != 1 || msgs[0].Kind != notify.Error {
		t.Fatalf("messages = %+v", msgs)
	}
	if !strings.Contains(msgs[0].Text, "could not read PDF") {
		t.Errorf("error message must carry the server text: %q", msgs[0].Text)
	}
}

func TestIngestUnexpectedShape(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totally": "different"}`))
	}))

	_, err := f.pipeline.Ingest(context.Background(), "odd.pdf", strings.NewReader("x"))
	if !errors.Is(err, backend.ErrUnexpectedShape) {
		t.Fatalf("want ErrUnexpectedShape, got %v", err)
	}
	if len(f.store.History()) != 0 {
		t.Error("prior state must be untouched")
	}
}

func TestIngestFailureLeavesPriorStateUntouched(t *testing.T) {
	good := true
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if good {
			w.Write([]byte(`{"data":{"name":"First"}}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"backend down"}`))
	}))

	if _, err := f.pipeline.Ingest(context.Background(), "first.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	currentID := f.store.CurrentID()

	good = false
	if _, err := f.pipeline.Ingest(context.Background(), "second.pdf", strings.NewReader("x")); err == nil {
		t.Fatal("second upload should fail")
	}

	if len(f.store.History()) != 1 {
		t.Error("failed upload added a history entry")
	}
	if f.store.CurrentID() != currentID {
		t.Error("failed upload moved the current pointer")
	}
	if f.store.Active().Name != "First" {
		t.Error("failed upload changed the active record")
	}
}
