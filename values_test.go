package mockldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToList(t *testing.T) {
	assert.Equal(t, []string{"a"}, toList("a"))
	assert.Equal(t, []string{"a", "b"}, toList([]string{"a", "b"}))
	assert.Nil(t, toList(nil))
	assert.Nil(t, toList(42))
}

func TestContainsValue(t *testing.T) {
	assert.True(t, containsValue("secret", "secret"))
	assert.False(t, containsValue("secret", "ecr"))
	assert.True(t, containsValue([]string{"a", "b"}, "b"))
	assert.False(t, containsValue([]string{"a", "b"}, "c"))
	assert.False(t, containsValue(nil, "a"))
}

func TestValueMatches(t *testing.T) {
	// Scalar and single-element list are interchangeable here; a
	// multi-valued list never matches.
	assert.True(t, valueMatches("users", "users"))
	assert.True(t, valueMatches([]string{"users"}, "users"))
	assert.False(t, valueMatches([]string{"users", "admins"}, "users"))
	assert.False(t, valueMatches("user", "users"))
	assert.False(t, valueMatches(nil, "users"))
}

func TestRemoveValues(t *testing.T) {
	original := []string{"john", "jack", "sam"}

	remaining := removeValues(original, []string{"jack"})
	assert.Equal(t, []string{"john", "sam"}, remaining)
	assert.Equal(t, []string{"john", "jack", "sam"}, original)

	assert.Empty(t, removeValues(original, []string{"john", "jack", "sam"}))
	assert.Equal(t, original, removeValues(original, []string{"nobody"}))
}

func TestCloneEntry(t *testing.T) {
	src := Entry{
		"cn":   "jack",
		"mail": []string{"jack@example.com"},
	}

	dst := cloneEntry(src)
	dst["cn"] = "changed"
	dst["mail"].([]string)[0] = "changed@example.com"

	assert.Equal(t, "jack", src["cn"])
	assert.Equal(t, []string{"jack@example.com"}, src["mail"])
}
