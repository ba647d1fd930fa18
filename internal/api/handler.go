package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"resume-insight/internal/backend"
	"resume-insight/internal/ingest"
	"resume-insight/internal/model"
	"resume-insight/internal/notify"
	"resume-insight/internal/session"
	"resume-insight/internal/timeseries"
)

// API holds the dashboard state and the ingestion pipeline behind the HTTP
// surface.
type API struct {
	store     *session.Store
	messenger *notify.Messenger
	pipeline  *ingest.Pipeline
}

func NewAPI(store *session.Store, messenger *notify.Messenger, pipeline *ingest.Pipeline) *API {
	return &API{
		store:     store,
		messenger: messenger,
		pipeline:  pipeline,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode JSON response: %v", err)
	}
}

// UploadResumeHandler ingests one uploaded resume
// @Summary Upload and analyze a resume
// @Description Upload a resume file, receive the parsed candidate record, and trigger platform enrichment
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file (PDF)"
// @Success 200 {object} model.CandidateRecord
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /resume/upload [post]
func (a *API) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "file too large or invalid (max 10MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		// Run the pipeline's own no-file path so the messenger reflects it.
		_, _ = a.pipeline.Ingest(r.Context(), "", nil)
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rec, err := a.pipeline.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		var serverErr *backend.ServerError
		switch {
		case errors.As(err, &serverErr):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": serverErr.Message})
		case errors.Is(err, backend.ErrUnexpectedShape):
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "unexpected response from analysis service"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "upload failed"})
		}
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// RecordHandler returns the active candidate record
// @Summary Current candidate record
// @Produce json
// @Success 200 {object} model.CandidateRecord
// @Router /record [get]
func (a *API) RecordHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Active())
}

// HistoryHandler lists past analyses, newest first
// @Summary Analysis history
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /history [get]
func (a *API) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	entries := a.store.History()
	if entries == nil {
		entries = []session.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current_id": a.store.CurrentID(),
		"entries":    entries,
	})
}

// SelectHistoryHandler makes a past analysis the current one
// @Summary Select a history entry
// @Param id path int true "History entry id"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /history/{id}/select [post]
func (a *API) SelectHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid history id", http.StatusBadRequest)
		return
	}
	if !a.store.Select(id) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "entry not selectable"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LogoutHandler clears the selection and resets the active record
// @Summary Log out
// @Success 204
// @Router /logout [post]
func (a *API) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	a.store.Clear()
	a.messenger.Post(notify.Success, "Logged out, cleared selection.", "🚪")
	w.WriteHeader(http.StatusNoContent)
}

// MessagesHandler returns the status message snapshot
// @Summary Status messages
// @Produce json
// @Success 200 {array} notify.Message
// @Router /messages [get]
func (a *API) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	msgs := a.messenger.Messages()
	if msgs == nil {
		msgs = []notify.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// SeriesHandler returns the chart series for one platform's activity graph
// @Summary Activity series
// @Description Normalized per-day activity for the active record's platform slot; series is null when there is no data
// @Produce json
// @Param platform path string true "Platform" Enums(leetcode, codechef, github)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /series/{platform} [get]
func (a *API) SeriesHandler(w http.ResponseWriter, r *http.Request) {
	platform := model.Platform(chi.URLParam(r, "platform"))
	if !model.KnownPlatform(platform) {
		http.Error(w, "unknown platform", http.StatusBadRequest)
		return
	}
	rec := a.store.Active()
	var series *timeseries.Series
	if stats := rec.Stats(platform); stats != nil {
		series = timeseries.Normalize(stats.Activity)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"platform": platform,
		"series":   series,
	})
}
