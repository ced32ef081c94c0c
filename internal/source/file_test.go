package source

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/teamtab/internal/core"
	"github.com/JonMunkholm/teamtab/internal/core/layouts"
	"github.com/JonMunkholm/teamtab/internal/record"
)

func TestFile_TeamsOnly(t *testing.T) {
	f := &File{Teams: strings.NewReader(`{"value":[
		{"teamid":"t1","name":"A","teamroles_association":[{"roleid":"r1","name":"X"}]},
		{"teamid":"t2","name":"B"}
	]}`)}

	ds, err := f.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, NameFile, ds.Source)
	assert.Equal(t, "", ds.Layout, "layout is left to the workspace default")
	assert.Nil(t, ds.Roles)
	require.Len(t, ds.Teams, 2)
	assert.Len(t, ds.Teams[0].Roles, 1)
}

func TestFile_WithRoles(t *testing.T) {
	f := &File{
		Teams: strings.NewReader(`{"value":[{"teamid":"t1","name":"A"},{"teamid":"t2","name":"B"}]}`),
		Roles: strings.NewReader(`{"value":[
			{"name":"X","parentId":"t1"},
			{"name":"Y","parentId":"t1"}
		]}`),
	}

	ds, err := f.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, layouts.SeparateKey, ds.Layout)
	aggs := ds.Joiner().Join(ds.Teams)
	require.Len(t, aggs, 2)
	assert.Len(t, aggs[0].Roles, 2)
	assert.Empty(t, aggs[1].Roles)
}

func TestFile_MissingValueKey(t *testing.T) {
	f := &File{Teams: strings.NewReader(`{"@odata.context":"x"}`)}

	ds, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds.Teams)
	assert.Empty(t, ds.Teams)
}

func TestFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     *File
		wantCode string
	}{
		{
			name:     "no file",
			file:     &File{},
			wantCode: "FILE004",
		},
		{
			name:     "empty teams file",
			file:     &File{Teams: strings.NewReader("")},
			wantCode: "FILE005",
		},
		{
			name:     "malformed teams",
			file:     &File{Teams: strings.NewReader(`{"value": [`)},
			wantCode: "FILE002",
		},
		{
			name:     "trailing data after teams",
			file:     &File{Teams: strings.NewReader(`{"value":[{"teamid":"t1"}]} trailing`)},
			wantCode: "FILE002",
		},
		{
			name: "trailing data after roles",
			file: &File{
				Teams: strings.NewReader(`{"value":[{"teamid":"t1"}]}`),
				Roles: strings.NewReader(`{"value":[]}{"value":[]}`),
			},
			wantCode: "FILE002",
		},
		{
			name: "malformed roles",
			file: &File{
				Teams: strings.NewReader(`{"value":[]}`),
				Roles: strings.NewReader(`not json`),
			},
			wantCode: "FILE002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.file.Load(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, core.MapError(err).Code)
		})
	}
}

func TestFile_EmptyFileSentinel(t *testing.T) {
	_, err := (&File{Teams: strings.NewReader("")}).Load(context.Background())
	assert.ErrorIs(t, err, record.ErrEmptyFile)

	_, err = (&File{}).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoFile)
}
