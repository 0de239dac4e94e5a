package mockldap

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// parentDN returns the superior of dn: everything after its first RDN
// component. An RDN-less dn has an empty parent.
func parentDN(dn string) string {
	if _, rest, ok := strings.Cut(dn, ","); ok {
		return rest
	}
	return ""
}

// splitRDN splits an "attribute=value" RDN component.
func splitRDN(rdn string) (string, string, error) {
	attr, value, ok := strings.Cut(rdn, "=")
	if !ok || attr == "" {
		return "", "", fmt.Errorf("invalid RDN syntax: %q", rdn)
	}
	return attr, value, nil
}

// isDirectChild reports whether child sits exactly one RDN below base, i.e.
// is a direct child rather than a deeper descendant. Comparison of the
// shared suffix is case-insensitive per RFC 4514; DNs that fail to parse
// never match.
func isDirectChild(child, base string) bool {
	childDN, err := ldap.ParseDN(child)
	if err != nil {
		return false
	}
	baseDN, err := ldap.ParseDN(base)
	if err != nil {
		return false
	}

	if len(childDN.RDNs) != len(baseDN.RDNs)+1 {
		return false
	}
	return baseDN.AncestorOfFold(childDN)
}
