package layouts

import (
	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/record"
)

// EmbeddedKey is the key of the single-source layout.
const EmbeddedKey = "embedded"

func init() {
	registerEmbedded()
}

// registerEmbedded covers exports where each team carries its own
// teamroles_association list.
func registerEmbedded() {
	core.Register(core.Layout{
		Key:     EmbeddedKey,
		Label:   "Teams with embedded roles",
		Variant: core.VariantEmbedded,
		Columns: []core.Column{
			{Label: "Team Name", Scope: core.ScopeTeam, Attr: record.AttrTeamName},
			{Label: "Team ID", Scope: core.ScopeTeam, Attr: record.AttrTeamID},
			{Label: "Business Unit", Scope: core.ScopeTeam, Attr: record.AttrBusinessUnit},
			{Label: "Category", Scope: core.ScopeTeam, Attr: record.AttrCategory},
			{Label: "Role ID", Scope: core.ScopeRole, Attr: record.AttrRoleID},
			{Label: "Role Name", Scope: core.ScopeRole, Attr: record.AttrRoleName},
		},
	})
}
