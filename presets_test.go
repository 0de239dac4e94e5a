package mockldap

import (
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetValueBypassesEmulation(t *testing.T) {
	m := newTestMock(t, nil)

	canned := []SearchEntry{{
		DN:         "cn=canned,dc=example,dc=com",
		Attributes: Entry{"cn": "canned"},
	}}
	require.NoError(t, m.SetReturnValue(
		"Search",
		Args("dc=example,dc=com", ldap.ScopeWholeSubtree, "(cn=canned)", []string(nil), false),
		canned,
	))

	// Subtree scope has no emulation, so only the preset can satisfy this.
	result, err := m.Search("dc=example,dc=com", ldap.ScopeWholeSubtree, "(cn=canned)", nil, false)
	require.NoError(t, err)
	assert.Equal(t, canned, result)

	// The directory store was never touched.
	assert.Empty(t, m.Directory())
}

func TestPresetErrorMarkerIsRaised(t *testing.T) {
	m := newTestMock(t, Directory{
		"cn=admin,dc=example,dc=com": Entry{"userPassword": "secret"},
	})

	injected := ldap.NewError(ldap.LDAPResultUnavailable, errors.New("maintenance window"))
	require.NoError(t, m.SetReturnValue("SimpleBind", Args("cn=admin,dc=example,dc=com", "secret"), injected))

	_, err := m.SimpleBind("cn=admin,dc=example,dc=com", "secret")
	require.Error(t, err)
	assert.True(t, ldap.IsErrorWithCode(err, ldap.LDAPResultUnavailable))

	// Other signatures still reach the emulation.
	res, err := m.SimpleBind("", "")
	require.NoError(t, err)
	assert.Equal(t, ResultTypeBind, res.Type)
}

func TestPresetArgumentNormalization(t *testing.T) {
	tests := []struct {
		name       string
		registered []any
		callAttrs  []string
	}{
		{
			name:       "registered as []any, called with []string",
			registered: Args("dc=x", ldap.ScopeWholeSubtree, "(uid=a)", []any{"mail", "uid"}, false),
			callAttrs:  []string{"mail", "uid"},
		},
		{
			name:       "registered as []string, called with []string",
			registered: Args("dc=x", ldap.ScopeWholeSubtree, "(uid=a)", []string{"mail", "uid"}, false),
			callAttrs:  []string{"mail", "uid"},
		},
		{
			name:       "registered with untyped nil, called with nil slice",
			registered: Args("dc=x", ldap.ScopeWholeSubtree, "(uid=a)", nil, false),
			callAttrs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMock(t, nil)
			canned := []SearchEntry{{DN: "uid=a,dc=x", Attributes: Entry{"uid": "a"}}}

			require.NoError(t, m.SetReturnValue("Search", tt.registered, canned))

			result, err := m.Search("dc=x", ldap.ScopeWholeSubtree, "(uid=a)", tt.callAttrs, false)
			require.NoError(t, err)
			assert.Equal(t, canned, result)
		})
	}
}

func TestPresetOverwrite(t *testing.T) {
	m := newTestMock(t, nil)

	first := []SearchEntry{{DN: "cn=first,dc=x", Attributes: Entry{"cn": "first"}}}
	second := []SearchEntry{{DN: "cn=second,dc=x", Attributes: Entry{"cn": "second"}}}

	args := Args("dc=x", ldap.ScopeWholeSubtree, "(cn=*)", []string(nil), false)
	require.NoError(t, m.SetReturnValue("Search", args, first))
	require.NoError(t, m.SetReturnValue("Search", args, second))

	result, err := m.Search("dc=x", ldap.ScopeWholeSubtree, "(cn=*)", nil, false)
	require.NoError(t, err)
	assert.Equal(t, second, result)
}

func TestPresetTypeMismatch(t *testing.T) {
	m := newTestMock(t, nil)

	require.NoError(t, m.SetReturnValue("Compare", Args("cn=a,dc=x", "cn", "a"), "yes"))

	_, err := m.Compare("cn=a,dc=x", "cn", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want bool")
}

func TestPresetMissDoesNotShadowEmulation(t *testing.T) {
	m := newTestMock(t, Directory{
		"cn=a,dc=x": Entry{"cn": []string{"a"}},
	})

	// Registered for a different dn; the actual call falls through.
	require.NoError(t, m.SetReturnValue("Compare", Args("cn=b,dc=x", "cn", "a"), true))

	found, err := m.Compare("cn=a,dc=x", "cn", "a")
	require.NoError(t, err)
	assert.True(t, found)
}
