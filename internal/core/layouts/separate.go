package layouts

import (
	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/record"
)

// SeparateKey is the key of the two-source layout.
const SeparateKey = "separate"

func init() {
	registerSeparate()
}

// registerSeparate covers teams and roles fetched independently and joined
// on team id.
func registerSeparate() {
	core.Register(core.Layout{
		Key:     SeparateKey,
		Label:   "Teams with separately fetched roles",
		Variant: core.VariantSeparate,
		Columns: []core.Column{
			{Label: "Team Name", Scope: core.ScopeTeam, Attr: record.AttrTeamName},
			{Label: "Team ID", Scope: core.ScopeTeam, Attr: record.AttrTeamID},
			{Label: "Business Unit", Scope: core.ScopeTeam, Attr: record.AttrBusinessUnit},
			{Label: "Email", Scope: core.ScopeTeam, Attr: record.AttrEmail},
			{Label: "Role Name", Scope: core.ScopeRole, Attr: record.AttrRoleName},
			{Label: "Privilege", Scope: core.ScopeRole, Attr: record.AttrPrivilege},
			{Label: "Environment", Scope: core.ScopeRole, Attr: record.AttrEnvironment},
		},
	})
}
