package source

import (
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/core/layouts"
	"github.com/JonMunkholm/teamtab/internal/logging"
	"github.com/JonMunkholm/teamtab/internal/record"
)

// File decodes an uploaded {"value": [...]} export.
//
// With only Teams set, roles are read from each team's
// teamroles_association. When Roles is also set, it is decoded as a role
// export and joined to the teams by parentId.
type File struct {
	Teams  io.Reader
	Roles  io.Reader
	Layout string // optional; defaults to the variant implied by Roles
}

// Name implements core.Source.
func (f *File) Name() string { return NameFile }

// Load implements core.Source. Decode errors are returned unchanged so the
// status line can show them.
func (f *File) Load(ctx context.Context) (*core.Dataset, error) {
	if f.Teams == nil {
		return nil, ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counted := record.NewCountingReader(f.Teams)
	teams, err := record.DecodeTeams(counted)
	if err != nil {
		return nil, err
	}
	logging.WithFields(ctx, "bytes", counted.BytesRead, "teams", len(teams)).Debug("teams file decoded")

	ds := &core.Dataset{Source: NameFile, Layout: f.Layout, Teams: teams}
	if f.Roles == nil {
		return ds, nil
	}

	roles, err := record.DecodeRoles(f.Roles)
	if err != nil {
		return nil, fmt.Errorf("roles file: %w", err)
	}
	ds.Roles = core.GroupRoles(roles)
	if ds.Layout == "" {
		ds.Layout = layouts.SeparateKey
	}
	return ds, nil
}
