package source

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/core/layouts"
	"github.com/JonMunkholm/teamtab/internal/record"
)

var (
	//go:embed samples/teams.json
	sampleTeams []byte

	//go:embed samples/separate_teams.json
	sampleSeparateTeams []byte

	//go:embed samples/separate_roles.json
	sampleSeparateRoles []byte
)

// Mock serves built-in sample data shaped for one layout.
type Mock struct {
	layout core.Layout
}

// NewMock returns sample data for the layout with the given key. An empty
// key selects the embedded-roles layout.
func NewMock(layoutKey string) (*Mock, error) {
	if layoutKey == "" {
		layoutKey = layouts.EmbeddedKey
	}
	layout, err := core.LookupLayout(layoutKey)
	if err != nil {
		return nil, err
	}
	return &Mock{layout: layout}, nil
}

// Name implements core.Source.
func (m *Mock) Name() string { return NameMock }

// Load implements core.Source. Every call decodes a fresh copy.
func (m *Mock) Load(ctx context.Context) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds := &core.Dataset{Source: NameMock, Layout: m.layout.Key}

	switch m.layout.Variant {
	case core.VariantSeparate:
		teams, err := record.DecodeTeams(bytes.NewReader(sampleSeparateTeams))
		if err != nil {
			return nil, fmt.Errorf("sample teams: %w", err)
		}
		roles, err := record.DecodeRoles(bytes.NewReader(sampleSeparateRoles))
		if err != nil {
			return nil, fmt.Errorf("sample roles: %w", err)
		}
		ds.Teams = teams
		ds.Roles = core.GroupRoles(roles)
	default:
		teams, err := record.DecodeTeams(bytes.NewReader(sampleTeams))
		if err != nil {
			return nil, fmt.Errorf("sample teams: %w", err)
		}
		ds.Teams = teams
	}

	return ds, nil
}
