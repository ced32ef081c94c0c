package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrEmptyFile is returned when a payload has no content at all.
var ErrEmptyFile = errors.New("empty file")

// ErrTrailingData is returned when anything but whitespace follows the
// envelope.
var ErrTrailingData = errors.New("invalid json: unexpected data after top-level value")

// Envelope is the {"value": [...]} wrapper of a team payload.
type Envelope struct {
	Value []Team `json:"value"`
}

// RoleEnvelope is the {"value": [...]} wrapper of a role payload.
type RoleEnvelope struct {
	Value []Role `json:"value"`
}

// DecodeTeams reads a team envelope. A payload without a "value" key yields
// an empty, non-nil list.
func DecodeTeams(r io.Reader) ([]Team, error) {
	var env Envelope
	if err := decode(r, &env); err != nil {
		return nil, err
	}
	if env.Value == nil {
		env.Value = []Team{}
	}
	return env.Value, nil
}

// DecodeRoles reads a role envelope.
func DecodeRoles(r io.Reader) ([]Role, error) {
	var env RoleEnvelope
	if err := decode(r, &env); err != nil {
		return nil, err
	}
	if env.Value == nil {
		env.Value = []Role{}
	}
	return env.Value, nil
}

func decode(r io.Reader, v any) error {
	dec := json.NewDecoder(NewBOMSkippingReader(r))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyFile
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}
