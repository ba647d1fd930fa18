package api

import (
	"fmt"
	"net/http"

	"resume-insight/internal/report"
)

// ReportHandler serves the plain-text analysis report for the active record
// @Summary Download analysis report
// @Produce plain
// @Success 200 {string} string
// @Router /report [get]
func (a *API) ReportHandler(w http.ResponseWriter, r *http.Request) {
	rec := a.store.Active()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(rec)))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, report.Render(rec))
}
