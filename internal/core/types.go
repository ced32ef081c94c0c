package core

import (
	"context"

	"github.com/JonMunkholm/teamtab/internal/record"
)

// Aggregate is a team paired with its resolved, ordered roles.
// The Roles slice belongs to the aggregate and is never shared with the input.
type Aggregate struct {
	Team  record.Team
	Roles []record.Role
}

// FlatRow is one spreadsheet row. Its width always equals the number of
// columns of the layout that produced it.
type FlatRow []string

// Scope says which side of an aggregate a column reads from.
type Scope int

const (
	ScopeTeam Scope = iota
	ScopeRole
)

// Column binds one output column to one source attribute.
type Column struct {
	Label string // Header label: "Team Name"
	Scope Scope  // Team or role attribute
	Attr  string // Source attribute name: "name", "teamid"
}

// Variant identifies how roles reach a team.
type Variant string

const (
	// VariantEmbedded reads roles from each team's teamroles_association.
	VariantEmbedded Variant = "embedded"

	// VariantSeparate reads roles from a second source grouped by team id.
	VariantSeparate Variant = "separate"
)

// Layout describes the columns of one export format.
type Layout struct {
	Key     string  // Unique identifier: "embedded"
	Label   string  // Display name
	Variant Variant // Expected shape of the data source
	Columns []Column
}

// Header returns the column labels in order.
func (l Layout) Header() []string {
	header := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		header[i] = col.Label
	}
	return header
}

// Dataset is what a source adapter hands to the core: teams in source order
// and, for the two-source variant, their roles grouped by team id.
type Dataset struct {
	Source string // Short name shown to the operator: "mock", "json", "remote"
	Layout string // Layout key the data was shaped for
	Teams  []record.Team

	// Roles is nil when roles are embedded in the teams.
	Roles RolesByTeam
}

// Joiner returns the join adapter matching how the dataset carries roles.
func (d *Dataset) Joiner() Joiner {
	if d.Roles == nil {
		return EmbeddedRoles{}
	}
	return d.Roles
}

// Source loads a dataset. Implementations live in package source.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}
