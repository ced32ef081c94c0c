// Package web provides HTTP handlers for the operator page.
// This file contains response types shared across handlers.
package web

import (
	"time"

	"github.com/JonMunkholm/teamtab/internal/core"
)

// RowsResponse is the JSON view of the workspace.
type RowsResponse struct {
	LoadID   string     `json:"load_id,omitempty"`
	Source   string     `json:"source,omitempty"`
	Layout   string     `json:"layout"`
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	Teams    int        `json:"teams"`
	Status   string     `json:"status,omitempty"`
	Error    string     `json:"error,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

func newRowsResponse(snap core.Snapshot) RowsResponse {
	flat := snap.Rows()
	rows := make([][]string, len(flat))
	for i, row := range flat {
		rows[i] = row
	}

	resp := RowsResponse{
		LoadID: snap.LoadID,
		Source: snap.Source,
		Layout: snap.Layout.Key,
		Header: snap.Header(),
		Rows:   rows,
		Teams:  len(snap.Teams),
		Status: snap.Status(),
		Error:  snap.Error,
	}
	if !snap.LoadedAt.IsZero() {
		loadedAt := snap.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}

// LayoutResponse describes one registered layout.
type LayoutResponse struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Variant string   `json:"variant"`
	Header  []string `json:"header"`
}

func newLayoutResponses(layouts []core.Layout) []LayoutResponse {
	out := make([]LayoutResponse, len(layouts))
	for i, layout := range layouts {
		out[i] = LayoutResponse{
			Key:     layout.Key,
			Label:   layout.Label,
			Variant: string(layout.Variant),
			Header:  layout.Header(),
		}
	}
	return out
}

// StatusResponse reports workspace and load limiter state.
type StatusResponse struct {
	LoadID string                 `json:"load_id,omitempty"`
	Status string                 `json:"status,omitempty"`
	Error  string                 `json:"error,omitempty"`
	Teams  int                    `json:"teams"`
	Loads  core.LoadLimiterStatus `json:"loads"`
	Remote bool                   `json:"remote_enabled"`
}
