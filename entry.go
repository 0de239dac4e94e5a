package mockldap

import (
	"github.com/go-ldap/ldap/v3"
)

// SearchEntry is a single search result: the entry's distinguished name and
// its attributes. Attributes reference the live directory entry, mirroring
// what a just-fetched result holds.
type SearchEntry struct {
	DN         string `json:"dn"`
	Attributes Entry  `json:"attributes"`
}

// ToLDAPEntry converts the result into the entry type used throughout
// go-ldap, for code under test written against *ldap.Entry.
func (e SearchEntry) ToLDAPEntry() *ldap.Entry {
	attrs := make(map[string][]string, len(e.Attributes))
	for name, value := range e.Attributes {
		attrs[name] = toList(value)
	}
	return ldap.NewEntry(e.DN, attrs)
}

// ToLDAPEntries converts a result list into go-ldap entries.
func ToLDAPEntries(entries []SearchEntry) []*ldap.Entry {
	out := make([]*ldap.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.ToLDAPEntry()
	}
	return out
}
