package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/teamtab/internal/config"
	"github.com/JonMunkholm/teamtab/internal/logging"
	"github.com/JonMunkholm/teamtab/internal/record"
)

// ErrNoRows is returned by exports when the workspace holds no data.
var ErrNoRows = errors.New("no rows to export")

// LoadTimeout is the maximum duration of a single source load.
var LoadTimeout = 2 * time.Minute

// sourceLabels are the status-line names of the built-in sources.
var sourceLabels = map[string]string{
	"mock":   "sample data",
	"json":   "JSON file",
	"remote": "remote endpoint",
}

// Service holds the data set shown on the operator page and used by exports.
// It is safe for concurrent use.
type Service struct {
	limiter       *LoadLimiter
	defaultLayout Layout

	mu    sync.RWMutex
	state Snapshot
}

// NewService creates a Service from configuration. The default layout must
// already be registered.
func NewService(cfg *config.Config) (*Service, error) {
	layout, err := LookupLayout(cfg.Export.DefaultLayout)
	if err != nil {
		return nil, fmt.Errorf("default layout: %w", err)
	}

	return &Service{
		limiter:       NewLoadLimiter(cfg.Load.MaxConcurrent, cfg.Load.MaxWaitTime),
		defaultLayout: layout,
		state:         Snapshot{Layout: layout},
	}, nil
}

// Load runs src and replaces the workspace with its data set.
//
// On failure the previous teams, roles and layout are kept and the error is
// recorded as the status line, matching a failed file read in the browser.
func (s *Service) Load(ctx context.Context, src Source) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		s.Fail(err)
		return err
	}
	defer s.limiter.Release()

	loadID := uuid.New().String()
	logger := logging.WithFields(ctx, "load_id", loadID, "source", src.Name())
	logger.Debug("load started")

	loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	ds, err := src.Load(loadCtx)
	if err != nil {
		logger.Warn("load failed", "error", err)
		s.Fail(err)
		return err
	}

	layout := s.defaultLayout
	if ds.Layout != "" {
		layout, err = LookupLayout(ds.Layout)
		if err != nil {
			logger.Warn("load failed", "error", err)
			s.Fail(err)
			return err
		}
	}

	snap := Snapshot{
		LoadID:   loadID,
		Source:   ds.Source,
		Layout:   layout,
		Teams:    ds.Teams,
		joiner:   ds.Joiner(),
		LoadedAt: time.Now(),
	}

	s.mu.Lock()
	s.state = snap
	s.mu.Unlock()

	logger.Info("load completed", "teams", len(ds.Teams), "layout", layout.Key)
	return nil
}

// Fail records err as the status line without touching the data. Callers
// use it for failures that happen before a source can run.
func (s *Service) Fail(err error) {
	s.mu.Lock()
	s.state.Error = LoadFailedStatus(err)
	s.mu.Unlock()
}

// Clear empties the workspace and resets the layout to the default.
func (s *Service) Clear() {
	s.mu.Lock()
	s.state = Snapshot{Layout: s.defaultLayout}
	s.mu.Unlock()
}

// Snapshot returns the current workspace state.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TSV returns the clipboard payload for the current data.
func (s *Service) TSV() (string, error) {
	return s.Snapshot().TSV()
}

// WriteXLSX writes the current data as a workbook.
func (s *Service) WriteXLSX(w io.Writer) error {
	return s.Snapshot().WriteXLSX(w)
}

// Preview returns the current teams as indented JSON.
func (s *Service) Preview() ([]byte, error) {
	return s.Snapshot().Preview()
}

// LoadLimiterStatus returns the state of the load limiter.
func (s *Service) LoadLimiterStatus() LoadLimiterStatus {
	return s.limiter.Status()
}

// WaitForLoads blocks until in-flight loads finish or ctx is done.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Snapshot is an immutable view of the workspace. Rows are derived on
// demand and never cached.
type Snapshot struct {
	LoadID   string
	Source   string
	Layout   Layout
	Teams    []record.Team
	Error    string
	LoadedAt time.Time

	joiner Joiner
}

// Empty reports whether there is nothing to show or export.
func (s Snapshot) Empty() bool {
	return len(s.Teams) == 0
}

// Header returns the active layout's column labels.
func (s Snapshot) Header() []string {
	return s.Layout.Header()
}

// Rows joins and flattens the teams with the active layout.
func (s Snapshot) Rows() []FlatRow {
	if s.Empty() {
		return nil
	}
	joiner := s.joiner
	if joiner == nil {
		joiner = EmbeddedRoles{}
	}
	return Flatten(s.Layout, joiner.Join(s.Teams))
}

// TSV serializes the rows. It returns ErrNoRows instead of a header-only
// payload.
func (s Snapshot) TSV() (string, error) {
	rows := s.Rows()
	if len(rows) == 0 {
		return "", ErrNoRows
	}
	return SerializeTSV(s.Header(), rows), nil
}

// WriteXLSX writes the rows as a workbook. It returns ErrNoRows when empty.
func (s Snapshot) WriteXLSX(w io.Writer) error {
	rows := s.Rows()
	if len(rows) == 0 {
		return ErrNoRows
	}
	return WriteXLSX(w, s.Header(), rows)
}

// Preview encodes the teams with every attribute they arrived with.
func (s Snapshot) Preview() ([]byte, error) {
	teams := s.Teams
	if teams == nil {
		teams = []record.Team{}
	}
	b, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return b, nil
}

// Status is the line shown under the load controls, empty before any load.
func (s Snapshot) Status() string {
	if s.Source == "" {
		return ""
	}
	label, ok := sourceLabels[s.Source]
	if !ok {
		label = s.Source
	}
	return fmt.Sprintf("Showing %s / %d teams", label, len(s.Teams))
}
