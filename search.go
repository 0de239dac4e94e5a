package mockldap

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// simpleFilterRE matches the single-clause (attribute=value) filters the
// one-level emulation supports. Compound filters fail the leading \w+ and
// fall through to preset-required.
var simpleFilterRE = regexp.MustCompile(`^\(\w+=.+\)$`)

// asyncResult holds a finished asynchronous search until its companion
// Result call fetches it.
type asyncResult struct {
	entries  []SearchEntry
	controls []ldap.Control
}

// SearchExt starts an asynchronous search and returns its request id,
// a monotonically increasing integer. The id is stamped into the cookie of
// an attached paging control; when the caller sends none, one sized by
// Config.PageSize is attached. The result is fetched with Result.
func (m *MockLDAP) SearchExt(base string, scope int, filter string, attrs []string, attrsOnly bool, controls []ldap.Control) (int, error) {
	m.record("SearchExt", map[string]any{
		"base":       base,
		"scope":      scope,
		"filter":     filter,
		"attrs":      attrs,
		"attrs_only": attrsOnly,
		"controls":   controlOIDs(controls),
	})

	msgid := m.cookie

	paging := findPagingControl(controls)
	if paging == nil {
		paging = ldap.NewControlPaging(m.config.PageSize)
		controls = append(slices.Clone(controls), paging)
	}
	paging.SetCookie([]byte(strconv.Itoa(msgid)))

	var entries []SearchEntry
	v, found, err := m.resolve("SearchExt", Args(base, scope, filter, attrs, attrsOnly))
	switch {
	case err != nil:
		m.logOpError("SearchExt", err, map[string]any{"base": base, "filter": filter})
		return 0, err
	case found:
		entries, err = coerceEntries("SearchExt", v)
		if err != nil {
			return 0, err
		}
	default:
		entries, err = m.search("SearchExt", base, scope, filter, attrs, attrsOnly)
		if err != nil {
			return 0, err
		}
	}

	m.asyncResults[msgid] = &asyncResult{entries: entries, controls: controls}
	m.cookie++

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Queued asynchronous search", map[string]any{
		"session_id": m.sessionID.String(),
		"msgid":      msgid,
		"entries":    len(entries),
	})

	return msgid, nil
}

// AsyncResult is what Result hands back for a finished asynchronous search.
type AsyncResult struct {
	Type      int
	Entries   []SearchEntry
	MessageID int
	Controls  []ldap.Control
}

// Result fetches a pending asynchronous search result and clears its paging
// cookie. ResultAny fetches the oldest pending result; an unknown id yields
// an empty result rather than an error.
func (m *MockLDAP) Result(msgid int) (*AsyncResult, error) {
	m.record("Result", map[string]any{"msgid": msgid})

	v, found, err := m.resolve("Result", Args(msgid))
	if err != nil {
		m.logOpError("Result", err, map[string]any{"msgid": msgid})
		return nil, err
	}
	if found {
		res, ok := v.(*AsyncResult)
		if !ok {
			return nil, presetTypeError("Result", v, "*AsyncResult")
		}
		return res, nil
	}

	if msgid == ResultAny {
		msgid = m.oldestPending()
	}

	res := &AsyncResult{Type: ResultTypeSearch, MessageID: msgid}
	if pending, ok := m.asyncResults[msgid]; ok {
		res.Entries = pending.entries
		res.Controls = pending.controls
		delete(m.asyncResults, msgid)

		if paging := findPagingControl(res.Controls); paging != nil {
			paging.SetCookie(nil)
		}
	}

	return res, nil
}

// oldestPending returns the smallest pending request id, or ResultAny when
// nothing is pending.
func (m *MockLDAP) oldestPending() int {
	oldest := ResultAny
	for msgid := range m.asyncResults {
		if oldest == ResultAny || msgid < oldest {
			oldest = msgid
		}
	}
	return oldest
}

// search dispatches the emulated scopes. The method name only feeds the
// preset-required detail so the test author sees which call to register.
func (m *MockLDAP) search(method, base string, scope int, filter string, attrs []string, attrsOnly bool) ([]SearchEntry, error) {
	detail := fmt.Sprintf("%q, %d, %q, %v, %v", base, scope, filter, attrs, attrsOnly)

	switch scope {
	case ldap.ScopeBaseObject:
		if filter != FilterMatchAll {
			err := &PresetRequiredError{Method: method, Detail: detail}
			m.logOpError(method, err, map[string]any{"base": base, "filter": filter})
			return nil, err
		}
		entry, ok := m.directory[base]
		if !ok {
			err := errNoSuchObject(base)
			m.logOpError(method, err, map[string]any{"base": base})
			return nil, err
		}
		return []SearchEntry{{DN: base, Attributes: entry}}, nil

	case ldap.ScopeSingleLevel:
		if !simpleFilterRE.MatchString(filter) {
			err := &PresetRequiredError{Method: method, Detail: detail}
			m.logOpError(method, err, map[string]any{"base": base, "filter": filter})
			return nil, err
		}
		return m.oneLevelSearch(base, filter), nil

	default:
		err := &PresetRequiredError{Method: method, Detail: detail}
		m.logOpError(method, err, map[string]any{"base": base, "scope": scope})
		return nil, err
	}
}

// oneLevelSearch matches direct children of base whose filtered attribute
// equals the filter value, either as a scalar or as a single-element list.
// Results come back sorted by DN for deterministic assertions.
func (m *MockLDAP) oneLevelSearch(base, filter string) []SearchEntry {
	clause := filter[1 : len(filter)-1]
	attr, value, _ := strings.Cut(clause, "=")

	var results []SearchEntry
	for dn, entry := range m.directory {
		if !isDirectChild(dn, base) {
			continue
		}
		if valueMatches(entry[attr], value) {
			results = append(results, SearchEntry{DN: dn, Attributes: entry})
		}
	}

	slices.SortFunc(results, func(a, b SearchEntry) int {
		return strings.Compare(a.DN, b.DN)
	})

	return results
}

// findPagingControl pulls the paging control out of a control list.
func findPagingControl(controls []ldap.Control) *ldap.ControlPaging {
	if c := ldap.FindControl(controls, ldap.ControlTypePaging); c != nil {
		if paging, ok := c.(*ldap.ControlPaging); ok {
			return paging
		}
	}
	return nil
}
