// Package source implements the data sources a workspace can load from.
//
// Every source returns a core.Dataset. Sources never flatten or serialize;
// they only decode records and, for the separate-roles variant, group roles
// by team id.
package source

import (
	"errors"

	"github.com/JonMunkholm/teamtab/internal/core"
)

// Source names shown on the status line.
const (
	NameMock   = "mock"
	NameFile   = "json"
	NameRemote = "remote"
)

var (
	// ErrNoFile is returned when a file source has nothing to read.
	ErrNoFile = errors.New("no file provided")

	// ErrNoEndpoint is returned when a remote source has no base URL.
	ErrNoEndpoint = errors.New("no remote endpoint configured")
)

var (
	_ core.Source = (*Mock)(nil)
	_ core.Source = (*File)(nil)
	_ core.Source = (*Remote)(nil)
)
