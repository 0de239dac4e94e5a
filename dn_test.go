package mockldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDirectChild(t *testing.T) {
	tests := []struct {
		name  string
		child string
		base  string
		want  bool
	}{
		{
			name:  "direct child",
			child: "cn=a,ou=users,dc=x",
			base:  "ou=users,dc=x",
			want:  true,
		},
		{
			name:  "grandchild",
			child: "cn=b,cn=a,ou=users,dc=x",
			base:  "ou=users,dc=x",
			want:  false,
		},
		{
			name:  "same entry",
			child: "ou=users,dc=x",
			base:  "ou=users,dc=x",
			want:  false,
		},
		{
			name:  "sibling subtree",
			child: "cn=a,ou=groups,dc=x",
			base:  "ou=users,dc=x",
			want:  false,
		},
		{
			name:  "case differences in the suffix",
			child: "cn=a,OU=Users,DC=X",
			base:  "ou=users,dc=x",
			want:  true,
		},
		{
			name:  "suffix match without being a descendant",
			child: "cn=a,ou=xusers,dc=x",
			base:  "ou=users,dc=x",
			want:  false,
		},
		{
			name:  "malformed child",
			child: "not a dn",
			base:  "ou=users,dc=x",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDirectChild(tt.child, tt.base))
		})
	}
}

func TestParentDN(t *testing.T) {
	assert.Equal(t, "ou=users,dc=x", parentDN("cn=a,ou=users,dc=x"))
	assert.Equal(t, "dc=x", parentDN("ou=users,dc=x"))
	assert.Equal(t, "", parentDN("dc=x"))
}

func TestSplitRDN(t *testing.T) {
	attr, value, err := splitRDN("uid=crito")
	require.NoError(t, err)
	assert.Equal(t, "uid", attr)
	assert.Equal(t, "crito", value)

	// Only the first separator splits; DN-valued attributes stay intact.
	attr, value, err = splitRDN("uniqueMember=cn=john,ou=users")
	require.NoError(t, err)
	assert.Equal(t, "uniqueMember", attr)
	assert.Equal(t, "cn=john,ou=users", value)

	_, _, err = splitRDN("no-separator")
	assert.Error(t, err)

	_, _, err = splitRDN("=value")
	assert.Error(t, err)
}
