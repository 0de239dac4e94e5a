package mockldap

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Every public operation follows the same control flow: record the call,
// consult the registered return values, and only on a miss fall back to the
// built-in emulation against the in-memory directory.

// Initialize hands back the fake connection for the given URI. A registered
// return value can substitute a different connection or inject a connect
// failure; by default the instance stands in for itself.
func (m *MockLDAP) Initialize(uri string) (*MockLDAP, error) {
	m.record("Initialize", map[string]any{"uri": uri})

	v, found, err := m.resolve("Initialize", Args(uri))
	if err != nil {
		m.logOpError("Initialize", err, map[string]any{"uri": uri})
		return nil, err
	}
	if found {
		conn, ok := v.(*MockLDAP)
		if !ok {
			return nil, presetTypeError("Initialize", v, "*MockLDAP")
		}
		return conn, nil
	}

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Initialized connection", map[string]any{
		"session_id": m.sessionID.String(),
		"uri":        uri,
	})

	return m, nil
}

// SetOption records an option value for later inspection. Options have no
// behavioral effect on the emulation.
func (m *MockLDAP) SetOption(option string, value any) {
	m.record("SetOption", map[string]any{"option": option, "invalue": value})
	m.options[option] = value
}

// StartTLS flips the TLS flag. No actual negotiation takes place.
func (m *MockLDAP) StartTLS() {
	m.record("StartTLS", map[string]any{})
	m.tlsEnabled = true
}

// SimpleBind authenticates who with cred. The anonymous bind ("", "")
// always succeeds; otherwise cred must match a userPassword value of the
// entry named by the lower-cased who.
func (m *MockLDAP) SimpleBind(who, cred string) (*Result, error) {
	m.record("SimpleBind", map[string]any{"who": who, "cred": cred})

	v, found, err := m.resolve("SimpleBind", Args(who, cred))
	if err != nil {
		m.logOpError("SimpleBind", err, map[string]any{"who": who})
		return nil, err
	}
	if found {
		return coerceResult("SimpleBind", v)
	}

	return m.simpleBind(who, cred)
}

// Compare reports whether value is among the values stored under attr for
// dn. A missing entry or attribute compares false, never an error.
func (m *MockLDAP) Compare(dn, attr, value string) (bool, error) {
	m.record("Compare", map[string]any{"dn": dn, "attr": attr, "value": value})

	v, found, err := m.resolve("Compare", Args(dn, attr, value))
	if err != nil {
		m.logOpError("Compare", err, map[string]any{"dn": dn, "attr": attr})
		return false, err
	}
	if found {
		b, ok := v.(bool)
		if !ok {
			return false, presetTypeError("Compare", v, "bool")
		}
		return b, nil
	}

	return m.compare(dn, attr, value), nil
}

// Search performs a synchronous search. Only base scope with the universal
// filter and one-level scope with a single-clause (attribute=value) filter
// are emulated; anything else needs a registered return value.
func (m *MockLDAP) Search(base string, scope int, filter string, attrs []string, attrsOnly bool) ([]SearchEntry, error) {
	m.record("Search", map[string]any{
		"base":       base,
		"scope":      scope,
		"filter":     filter,
		"attrs":      attrs,
		"attrs_only": attrsOnly,
	})

	v, found, err := m.resolve("Search", Args(base, scope, filter, attrs, attrsOnly))
	if err != nil {
		m.logOpError("Search", err, map[string]any{"base": base, "filter": filter})
		return nil, err
	}
	if found {
		return coerceEntries("Search", v)
	}

	return m.search("Search", base, scope, filter, attrs, attrsOnly)
}

// Add stores a new entry built from the ordered attribute record. The
// success marker carries the current ledger length as a pseudo message id.
func (m *MockLDAP) Add(dn string, record []Attr) (*Result, error) {
	m.record("Add", map[string]any{"dn": dn, "record": record})

	v, found, err := m.resolve("Add", Args(dn, record))
	if err != nil {
		m.logOpError("Add", err, map[string]any{"dn": dn})
		return nil, err
	}
	if found {
		return coerceResult("Add", v)
	}

	return m.add(dn, record)
}

// Modify applies the modifications to dn in order. See Mod for the
// supported operation kinds.
func (m *MockLDAP) Modify(dn string, mods []Mod) (*Result, error) {
	m.record("Modify", map[string]any{"dn": dn, "mod_attrs": mods})

	v, found, err := m.resolve("Modify", Args(dn, mods))
	if err != nil {
		m.logOpError("Modify", err, map[string]any{"dn": dn})
		return nil, err
	}
	if found {
		return coerceResult("Modify", v)
	}

	return m.modify(dn, mods)
}

// Delete removes the entry at dn.
func (m *MockLDAP) Delete(dn string) (*Result, error) {
	m.record("Delete", map[string]any{"dn": dn})

	v, found, err := m.resolve("Delete", Args(dn))
	if err != nil {
		m.logOpError("Delete", err, map[string]any{"dn": dn})
		return nil, err
	}
	if found {
		return coerceResult("Delete", v)
	}

	return m.deleteEntry(dn)
}

// Rename moves dn to newRDN under newSuperior, or under its original parent
// when newSuperior is empty. The renamed entry's leading attribute is
// rewritten from the new RDN.
func (m *MockLDAP) Rename(dn, newRDN, newSuperior string) (*Result, error) {
	m.record("Rename", map[string]any{"dn": dn, "newrdn": newRDN, "superior": newSuperior})

	v, found, err := m.resolve("Rename", Args(dn, newRDN, newSuperior))
	if err != nil {
		m.logOpError("Rename", err, map[string]any{"dn": dn, "newrdn": newRDN})
		return nil, err
	}
	if found {
		return coerceResult("Rename", v)
	}

	return m.rename(dn, newRDN, newSuperior)
}

// Unbind records the disconnect. A registered return value can inject an
// error; nothing else happens.
func (m *MockLDAP) Unbind() error {
	m.record("Unbind", map[string]any{})

	if _, _, err := m.resolve("Unbind", Args()); err != nil {
		m.logOpError("Unbind", err, nil)
		return err
	}
	return nil
}

// simpleBind is the bind emulation: anonymous success, otherwise a plain
// password comparison against the entry's userPassword values.
func (m *MockLDAP) simpleBind(who, cred string) (*Result, error) {
	if who == "" && cred == "" {
		return &Result{Type: ResultTypeBind}, nil
	}

	if m.compare(strings.ToLower(who), "userPassword", cred) {
		return &Result{Type: ResultTypeBind}, nil
	}

	err := errInvalidCredentials(who)
	m.logOpError("SimpleBind", err, map[string]any{"who": who})
	return nil, err
}

// coerceResult narrows a registered return value to the success marker
// write operations produce.
func coerceResult(method string, v any) (*Result, error) {
	res, ok := v.(*Result)
	if !ok {
		return nil, presetTypeError(method, v, "*Result")
	}
	return res, nil
}

// coerceEntries narrows a registered return value to a search result list.
func coerceEntries(method string, v any) ([]SearchEntry, error) {
	entries, ok := v.([]SearchEntry)
	if !ok {
		return nil, presetTypeError(method, v, "[]SearchEntry")
	}
	return entries, nil
}

// controlOIDs lists the control type OIDs for the call ledger.
func controlOIDs(controls []ldap.Control) []string {
	oids := make([]string, len(controls))
	for i, c := range controls {
		oids[i] = c.GetControlType()
	}
	return oids
}
