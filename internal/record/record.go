// Package record defines the team and role shapes found in Dataverse-style
// exports.
//
// Each record type carries a typed subset of well-known attributes plus an
// Extra bag with every attribute it does not recognize. Extras survive a
// decode/encode round trip so the raw JSON preview can show them.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Source attribute names of a team.
const (
	AttrTeamID       = "teamid"
	AttrTeamName     = "name"
	AttrBusinessUnit = "_businessunitid_value"
	AttrCategory     = "com_team_category"
	AttrEmail        = "emailaddress"
	AttrDescription  = "description"
	AttrTeamRoles    = "teamroles_association"
)

// Source attribute names of a role.
const (
	AttrRoleID      = "roleid"
	AttrRoleName    = "name"
	AttrParentID    = "parentId"
	AttrPrivilege   = "privilege"
	AttrEnvironment = "environment"
)

// Team is a parent record.
type Team struct {
	ID           Value
	Name         Value
	BusinessUnit Value
	Category     Value
	Email        Value
	Description  Value

	// Roles holds the embedded role associations of the single-source export.
	// nil means the attribute was absent.
	Roles []Role

	Extra map[string]json.RawMessage

	// order lists attribute names as they appeared in the source document.
	order []string
}

// Role is a child record.
type Role struct {
	ID          Value
	Name        Value
	ParentID    Value
	Privilege   Value
	Environment Value

	Extra map[string]json.RawMessage

	order []string
}

// Declaration order of the known attributes, used when marshaling records
// that were built in code rather than decoded.
var (
	teamAttrs = []string{AttrTeamID, AttrTeamName, AttrBusinessUnit, AttrCategory, AttrEmail, AttrDescription, AttrTeamRoles}
	roleAttrs = []string{AttrRoleID, AttrRoleName, AttrParentID, AttrPrivilege, AttrEnvironment}
)

func (t *Team) known() map[string]*Value {
	return map[string]*Value{
		AttrTeamID:       &t.ID,
		AttrTeamName:     &t.Name,
		AttrBusinessUnit: &t.BusinessUnit,
		AttrCategory:     &t.Category,
		AttrEmail:        &t.Email,
		AttrDescription:  &t.Description,
	}
}

func (r *Role) known() map[string]*Value {
	return map[string]*Value{
		AttrRoleID:      &r.ID,
		AttrRoleName:    &r.Name,
		AttrParentID:    &r.ParentID,
		AttrPrivilege:   &r.Privilege,
		AttrEnvironment: &r.Environment,
	}
}

// Attr returns the attribute stored under a source name, looking at the
// known fields first and then the extra bag.
func (t Team) Attr(name string) Value {
	if v, ok := t.known()[name]; ok {
		return *v
	}
	return Raw(t.Extra[name])
}

// Attr returns the attribute stored under a source name.
func (r Role) Attr(name string) Value {
	if v, ok := r.known()[name]; ok {
		return *v
	}
	return Raw(r.Extra[name])
}

// UnmarshalJSON implements json.Unmarshaler.
//
// An embedded role list that cannot be decoded as an array of objects is
// kept verbatim in Extra rather than failing the whole document.
func (t *Team) UnmarshalJSON(b []byte) error {
	order, attrs, err := decodeObject(b)
	if err != nil {
		return fmt.Errorf("team: %w", err)
	}

	*t = Team{order: order}
	known := t.known()
	for name, raw := range attrs {
		if v, ok := known[name]; ok {
			*v = Raw(raw)
			continue
		}
		if name == AttrTeamRoles {
			if roles, ok := decodeRoleList(raw); ok {
				t.Roles = roles
				continue
			}
		}
		t.setExtra(name, raw)
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Attributes keep the order they
// were decoded in; attributes set in code follow in declaration order.
func (t Team) MarshalJSON() ([]byte, error) {
	known := t.known()
	return encodeObject(t.order, teamAttrs, t.Extra, func(name string) (json.RawMessage, bool, error) {
		if v, ok := known[name]; ok {
			return v.RawMessage(), v.IsSet(), nil
		}
		if name == AttrTeamRoles && t.Roles != nil {
			b, err := json.Marshal(t.Roles)
			return b, true, err
		}
		raw, ok := t.Extra[name]
		return raw, ok, nil
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Role) UnmarshalJSON(b []byte) error {
	order, attrs, err := decodeObject(b)
	if err != nil {
		return fmt.Errorf("role: %w", err)
	}

	*r = Role{order: order}
	known := r.known()
	for name, raw := range attrs {
		if v, ok := known[name]; ok {
			*v = Raw(raw)
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[name] = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Role) MarshalJSON() ([]byte, error) {
	known := r.known()
	return encodeObject(r.order, roleAttrs, r.Extra, func(name string) (json.RawMessage, bool, error) {
		if v, ok := known[name]; ok {
			return v.RawMessage(), v.IsSet(), nil
		}
		raw, ok := r.Extra[name]
		return raw, ok, nil
	})
}

func (t *Team) setExtra(name string, raw json.RawMessage) {
	if t.Extra == nil {
		t.Extra = make(map[string]json.RawMessage)
	}
	t.Extra[name] = raw
}

// decodeObject reads a JSON object and returns its member names in source
// order. A null object yields no members.
func decodeObject(b []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if tok == nil {
		return nil, nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, found %v", tok)
	}

	var order []string
	attrs := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		name, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, seen := attrs[name]; !seen {
			order = append(order, name)
		}
		attrs[name] = raw
	}
	return order, attrs, nil
}

// encodeObject writes the members returned by get. Names in order come
// first, then the declared attributes, then remaining extras sorted by name.
func encodeObject(
	order, declared []string,
	extra map[string]json.RawMessage,
	get func(name string) (json.RawMessage, bool, error),
) ([]byte, error) {
	names := make([]string, 0, len(order)+len(declared)+len(extra))
	names = append(names, order...)
	names = append(names, declared...)
	extraNames := make([]string, 0, len(extra))
	for name := range extra {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	names = append(names, extraNames...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := make(map[string]bool, len(names))
	for _, name := range names {
		if written[name] {
			continue
		}
		raw, ok, err := get(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		written[name] = true

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeRoleList reports false for anything other than an array of objects.
func decodeRoleList(raw json.RawMessage) ([]Role, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var roles []Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, false
	}
	if roles == nil {
		roles = []Role{}
	}
	return roles, true
}
