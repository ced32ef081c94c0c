package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/logging"
	"github.com/JonMunkholm/teamtab/internal/web/templates"
)

// handlePage renders the operator page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()

	preview, err := snap.Preview()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	page := templates.Page(templates.PageProps{
		Layouts:       core.Layouts(),
		ActiveLayout:  snap.Layout.Key,
		Header:        snap.Header(),
		Rows:          snap.Rows(),
		TeamCount:     len(snap.Teams),
		Status:        snap.Status(),
		Error:         snap.Error,
		Preview:       string(preview),
		RemoteEnabled: s.cfg.Remote.BaseURL != "",
		StatusTTL:     s.cfg.Export.StatusTTL,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleRows returns the flattened table as JSON.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newRowsResponse(s.service.Snapshot()))
}

// handlePreview returns the loaded teams with all their attributes.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	preview, err := s.service.Preview()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(preview)
}

// handleLayouts lists the registered layouts.
func (s *Server) handleLayouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newLayoutResponses(core.Layouts()))
}

// handleStatus reports the status line and load limiter state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.service.Snapshot()
	writeJSON(w, http.StatusOK, StatusResponse{
		LoadID: snap.LoadID,
		Status: snap.Status(),
		Error:  snap.Error,
		Teams:  len(snap.Teams),
		Loads:  s.service.LoadLimiterStatus(),
		Remote: s.cfg.Remote.BaseURL != "",
	})
}

// handleExportTSV returns the clipboard payload. The copy button fetches it
// without a download parameter; the TSV link adds ?download=1.
func (s *Server) handleExportTSV(w http.ResponseWriter, r *http.Request) {
	payload, err := s.service.TSV()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("tsv")))
	}
	w.Write([]byte(payload))
}

// handleExportXLSX returns the rows as a workbook. The workbook is built in
// memory so that an error can still be reported with a proper status.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.service.WriteXLSX(&buf); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("xlsx")))
	w.Write(buf.Bytes())
}

func exportFilename(ext string) string {
	return fmt.Sprintf("teams_%s.%s", time.Now().Format("20060102_150405"), ext)
}
