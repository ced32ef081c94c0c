package core

import "github.com/JonMunkholm/teamtab/internal/record"

// Joiner pairs each team with its roles.
//
// Implementations must return exactly one Aggregate per input team, in input
// order. Duplicate or empty team ids are kept as separate aggregates.
type Joiner interface {
	Join(teams []record.Team) []Aggregate
}

// EmbeddedRoles joins teams with the roles embedded in each team record.
type EmbeddedRoles struct{}

// Join implements Joiner.
func (EmbeddedRoles) Join(teams []record.Team) []Aggregate {
	out := make([]Aggregate, len(teams))
	for i, team := range teams {
		out[i] = Aggregate{Team: team, Roles: cloneRoles(team.Roles)}
	}
	return out
}

// RolesByTeam joins teams with roles fetched separately, keyed by team id.
// A team without an entry gets no roles.
type RolesByTeam map[string][]record.Role

// Join implements Joiner.
func (m RolesByTeam) Join(teams []record.Team) []Aggregate {
	out := make([]Aggregate, len(teams))
	for i, team := range teams {
		out[i] = Aggregate{Team: team, Roles: cloneRoles(m[team.ID.String()])}
	}
	return out
}

// GroupRoles groups a flat role list by each role's parentId, keeping input
// order within every group. Roles without a parent id are grouped under "".
func GroupRoles(roles []record.Role) RolesByTeam {
	grouped := make(RolesByTeam)
	for _, role := range roles {
		key := role.ParentID.String()
		grouped[key] = append(grouped[key], role)
	}
	return grouped
}

func cloneRoles(roles []record.Role) []record.Role {
	if len(roles) == 0 {
		return nil
	}
	return append([]record.Role(nil), roles...)
}
