package web

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/teamtab/internal/source"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in
// memory before spilling to disk.
const multipartMemory = 8 << 20

// handleLoadMock loads the built-in sample data.
// The layout comes from the "layout" query or form value.
func (s *Server) handleLoadMock(w http.ResponseWriter, r *http.Request) {
	src, err := source.NewMock(r.FormValue("layout"))
	if err != nil {
		s.service.Fail(err)
		s.respondLoad(w, r, err)
		return
	}

	s.respondLoad(w, r, s.service.Load(r.Context(), src))
}

// handleLoadFile loads an uploaded team export and optional role export.
func (s *Server) handleLoadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.service.Fail(err)
		s.respondLoad(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	teams, err := formFile(r, "file")
	if err != nil {
		s.service.Fail(err)
		s.respondLoad(w, r, err)
		return
	}
	defer teams.Close()

	src := &source.File{Teams: teams, Layout: r.FormValue("layout")}

	roles, err := formFile(r, "roles")
	switch {
	case err == nil:
		defer roles.Close()
		src.Roles = roles
	case !errors.Is(err, source.ErrNoFile):
		s.service.Fail(err)
		s.respondLoad(w, r, err)
		return
	}

	s.respondLoad(w, r, s.service.Load(r.Context(), src))
}

// handleLoadRemote fetches teams and roles from the configured endpoint.
func (s *Server) handleLoadRemote(w http.ResponseWriter, r *http.Request) {
	opts := source.RemoteOptionsFromConfig(s.cfg.Remote)
	opts.Layout = r.FormValue("layout")

	src, err := source.NewRemote(opts)
	if err != nil {
		s.service.Fail(err)
		s.respondLoad(w, r, err)
		return
	}

	s.respondLoad(w, r, s.service.Load(r.Context(), src))
}

// handleClear empties the workspace.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.service.Clear()
	s.respondLoad(w, r, nil)
}

// respondLoad finishes a state-changing request. Browser forms are sent
// back to the page, which shows the recorded status or error. API clients
// get the new rows or a JSON error.
func (s *Server) respondLoad(w http.ResponseWriter, r *http.Request, err error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newRowsResponse(s.service.Snapshot()))
}

// formFile returns the named upload. A missing or empty part is reported as
// source.ErrNoFile.
func formFile(r *http.Request, name string) (multipart.File, error) {
	file, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, source.ErrNoFile
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}
