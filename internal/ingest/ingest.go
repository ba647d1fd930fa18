// Package ingest runs one resume upload end to end: submit the file to the
// analysis service, reconcile the response into a well-formed candidate
// record, store it as the newest history entry, and kick off enrichment for
// any platform handles found.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"resume-insight/internal/backend"
	"resume-insight/internal/enrich"
	"resume-insight/internal/model"
	"resume-insight/internal/notify"
	"resume-insight/internal/session"
)

// ErrNoFile is the local validation failure for an upload without a file.
var ErrNoFile = errors.New("no file selected")

// Pipeline wires the ingestion flow together.
type Pipeline struct {
	backend    *backend.Client
	store      *session.Store
	messenger  *notify.Messenger
	enricher   *enrich.Orchestrator
	clearAfter time.Duration
}

func NewPipeline(bc *backend.Client, store *session.Store, messenger *notify.Messenger, enricher *enrich.Orchestrator, clearAfter time.Duration) *Pipeline {
	return &Pipeline{
		backend:    bc,
		store:      store,
		messenger:  messenger,
		enricher:   enricher,
		clearAfter: clearAfter,
	}
}

// Ingest uploads one file and returns the resulting record. On any failure
// the prior state (history, current record) is left untouched and the error
// is also reported through the status messenger. The enrichment triggers are
// fire-and-forget; Ingest returns once the record is stored.
func (p *Pipeline) Ingest(ctx context.Context, filename string, file io.Reader) (model.CandidateRecord, error) {
	if file == nil || filename == "" {
		p.messenger.Post(notify.Error, "No file selected", "⚠️")
		return model.NewCandidateRecord(), ErrNoFile
	}

	p.messenger.Post(notify.Processing, "⏳ Uploading resume...", "⏳")

	result, err := p.backend.UploadResume(ctx, filename, file)
	if err != nil {
		var serverErr *backend.ServerError
		switch {
		case errors.As(err, &serverErr):
			p.messenger.Post(notify.Error, fmt.Sprintf("❌ Server error: %s", serverErr.Message), "⚠️")
		case errors.Is(err, backend.ErrUnexpectedShape):
			p.messenger.Post(notify.Error, "❌ Unexpected server response", "⚠️")
		default:
			p.messenger.Post(notify.Error, "❌ Upload failed!", "⚠️")
		}
		log.Printf("[Ingest] Upload of %s failed: %v", filename, err)
		return model.NewCandidateRecord(), err
	}

	rec, err := model.MergeServerPayload(result.Data, result.ATSScore, result.WordCount)
	if err != nil {
		p.messenger.Post(notify.Error, "❌ Unexpected server response", "⚠️")
		log.Printf("[Ingest] Payload for %s did not decode: %v", filename, err)
		return model.NewCandidateRecord(), backend.ErrUnexpectedShape
	}

	entry := p.store.Add(filename, rec, session.StatusSuccess)
	log.Printf("[Ingest] Stored analysis %d for %s", entry.ID, filename)

	p.messenger.Post(notify.Success, "✅ Resume analyzed successfully!", "🎉")
	if p.clearAfter > 0 {
		p.messenger.ClearAfter(p.clearAfter)
	}

	p.enricher.Trigger(entry.ID, rec)
	return rec, nil
}
