package mockldap

import (
	"fmt"
	"slices"

	"github.com/go-ldap/ldap/v3"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// In-memory emulation of the write operations. Validation that can fail
// always precedes mutation, so a failed operation leaves the directory
// untouched; no operation partially applies.

func (m *MockLDAP) compare(dn, attr, value string) bool {
	entry, ok := m.directory[dn]
	if !ok {
		return false
	}
	return containsValue(entry[attr], value)
}

func (m *MockLDAP) add(dn string, record []Attr) (*Result, error) {
	if _, exists := m.directory[dn]; exists {
		err := errAlreadyExists(dn)
		m.logOpError("Add", err, map[string]any{"dn": dn})
		return nil, err
	}

	entry := make(Entry, len(record))
	for _, attr := range record {
		entry[attr.Type] = attr.Vals
	}
	m.directory[dn] = entry

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Added entry", map[string]any{
		"session_id": m.sessionID.String(),
		"dn":         dn,
		"attributes": len(entry),
	})

	return &Result{Type: ResultTypeAdd, MessageID: len(m.calls)}, nil
}

func (m *MockLDAP) modify(dn string, mods []Mod) (*Result, error) {
	entry, ok := m.directory[dn]
	if !ok {
		err := errNoSuchObject(dn)
		m.logOpError("Modify", err, map[string]any{"dn": dn})
		return nil, err
	}

	for _, mod := range mods {
		switch mod.Op {
		case ldap.AddAttribute, ldap.DeleteAttribute, ldap.ReplaceAttribute:
		default:
			return nil, fmt.Errorf("unsupported modify operation %d on %s", mod.Op, mod.Type)
		}
	}

	for _, mod := range mods {
		vals := toList(mod.Vals)

		switch mod.Op {
		case ldap.AddAttribute:
			entry[mod.Type] = append(slices.Clone(toList(entry[mod.Type])), vals...)

		case ldap.DeleteAttribute:
			// No values means drop the whole attribute.
			if len(vals) == 0 {
				delete(entry, mod.Type)
				continue
			}
			remaining := removeValues(toList(entry[mod.Type]), vals)
			if len(remaining) == 0 {
				delete(entry, mod.Type)
			} else {
				entry[mod.Type] = remaining
			}

		case ldap.ReplaceAttribute:
			entry[mod.Type] = vals
		}
	}

	return &Result{Type: ResultTypeModify}, nil
}

func (m *MockLDAP) deleteEntry(dn string) (*Result, error) {
	if _, ok := m.directory[dn]; !ok {
		err := errNoSuchObject(dn)
		m.logOpError("Delete", err, map[string]any{"dn": dn})
		return nil, err
	}

	delete(m.directory, dn)
	return &Result{Type: ResultTypeDelete}, nil
}

func (m *MockLDAP) rename(dn, newRDN, newSuperior string) (*Result, error) {
	entry, ok := m.directory[dn]
	if !ok {
		err := errNoSuchObject(dn)
		m.logOpError("Rename", err, map[string]any{"dn": dn})
		return nil, err
	}

	attr, value, err := splitRDN(newRDN)
	if err != nil {
		return nil, err
	}

	superior := newSuperior
	if superior == "" {
		superior = parentDN(dn)
	}
	newDN := newRDN + "," + superior

	moved := cloneEntry(entry)
	moved[attr] = value
	m.directory[newDN] = moved
	if newDN != dn {
		delete(m.directory, dn)
	}

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Renamed entry", map[string]any{
		"session_id": m.sessionID.String(),
		"dn":         dn,
		"new_dn":     newDN,
	})

	return &Result{Type: ResultTypeModDN}, nil
}
