// Package core turns team exports into spreadsheet rows.
//
// The package has no knowledge of HTTP or the command line. Web handlers,
// CLI commands and tests all go through the same functions.
//
// # Pipeline
//
// Every export runs the same three steps:
//
//  1. A [Joiner] pairs each team with its roles. [EmbeddedRoles] reads the
//     teamroles_association list of each team; [RolesByTeam] looks roles up
//     in a second data set grouped by team id (see [GroupRoles]).
//  2. [Flatten] expands the aggregates into [FlatRow] values using the
//     column bindings of a [Layout]. A team without roles still yields one
//     row with blank role columns.
//  3. [SerializeTSV] or [WriteXLSX] renders the header and rows. Tabs and
//     line breaks inside values become spaces.
//
// None of the steps can fail. Missing or non-scalar attributes become empty
// cells.
//
// # Layout Registry
//
// Layouts are registered at init time using [Register], normally by
// importing internal/core/layouts:
//
//	core.Register(core.Layout{
//	    Key:     "embedded",
//	    Variant: core.VariantEmbedded,
//	    Columns: []core.Column{
//	        {Label: "Team Name", Scope: core.ScopeTeam, Attr: "name"},
//	        {Label: "Role ID", Scope: core.ScopeRole, Attr: "roleid"},
//	    },
//	})
//
// # Workspace
//
// [Service] keeps the data set the operator is looking at. [Service.Load]
// runs a [Source] under a [LoadLimiter]; a failed load leaves the previous
// data in place and records a status line. Rows are recomputed from the
// stored teams on every [Snapshot.Rows] call.
//
// # Error Handling
//
// Failures from sources and exports are mapped to user-friendly messages
// using [MapError]. Each category has a code for support reference:
//
//   - FILE001-FILE005: upload and decode errors
//   - SRC001-SRC004: remote endpoint errors
//   - LOAD001-LOAD002: load limiter and cancellation
//   - EXP001-EXP003: export errors
package core
