package core

import "github.com/JonMunkholm/teamtab/internal/record"

// Flatten expands aggregates into rows using the layout's column bindings.
//
// A team with roles yields one row per role, in role order. A team without
// roles yields a single row whose role columns are empty. Row count is
// therefore the sum over teams of max(1, len(roles)).
func Flatten(layout Layout, aggregates []Aggregate) []FlatRow {
	total := 0
	for _, agg := range aggregates {
		total += max(1, len(agg.Roles))
	}

	rows := make([]FlatRow, 0, total)
	for _, agg := range aggregates {
		if len(agg.Roles) == 0 {
			rows = append(rows, buildRow(layout.Columns, agg.Team, nil))
			continue
		}
		for i := range agg.Roles {
			rows = append(rows, buildRow(layout.Columns, agg.Team, &agg.Roles[i]))
		}
	}
	return rows
}

// buildRow extracts one cell per column. A nil role leaves role columns blank.
func buildRow(cols []Column, team record.Team, role *record.Role) FlatRow {
	row := make(FlatRow, len(cols))
	for i, col := range cols {
		switch col.Scope {
		case ScopeTeam:
			row[i] = team.Attr(col.Attr).String()
		case ScopeRole:
			if role != nil {
				row[i] = role.Attr(col.Attr).String()
			}
		}
	}
	return row
}
