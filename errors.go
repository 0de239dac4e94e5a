package mockldap

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// ErrorCategory groups the error kinds this double produces.
type ErrorCategory string

const (
	ErrorCategoryAuthentication ErrorCategory = "authentication"
	ErrorCategoryNotFound       ErrorCategory = "not_found"
	ErrorCategoryConflict       ErrorCategory = "conflict"
	ErrorCategoryPresetRequired ErrorCategory = "preset_required"
	ErrorCategoryUnknown        ErrorCategory = "unknown"
)

// PresetRequiredError reports a call outside the built-in emulation for
// which no return value was registered. The test must supply a canned
// answer via SetReturnValue.
type PresetRequiredError struct {
	Method string // The operation that could not be emulated
	Detail string // The arguments as received
}

func (e *PresetRequiredError) Error() string {
	return fmt.Sprintf("preset return value required for %s(%s)", e.Method, e.Detail)
}

// errInvalidCredentials mirrors a failed simple bind as surfaced by a real
// client library.
func errInvalidCredentials(who string) error {
	return ldap.NewError(ldap.LDAPResultInvalidCredentials, fmt.Errorf("invalid credentials for %q", who))
}

// errNoSuchObject mirrors an operation against an absent entry.
func errNoSuchObject(dn string) error {
	return ldap.NewError(ldap.LDAPResultNoSuchObject, fmt.Errorf("no such object: %s", dn))
}

// errAlreadyExists mirrors an add against an existing entry.
func errAlreadyExists(dn string) error {
	return ldap.NewError(ldap.LDAPResultEntryAlreadyExists, fmt.Errorf("entry already exists: %s", dn))
}

// GetErrorCategory classifies an error produced by this package or injected
// through a preset.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryUnknown
	}

	var preset *PresetRequiredError
	if errors.As(err, &preset) {
		return ErrorCategoryPresetRequired
	}

	switch {
	case ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials),
		ldap.IsErrorWithCode(err, ldap.LDAPResultInappropriateAuthentication):
		return ErrorCategoryAuthentication
	case ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject),
		ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchAttribute):
		return ErrorCategoryNotFound
	case ldap.IsErrorWithCode(err, ldap.LDAPResultEntryAlreadyExists),
		ldap.IsErrorWithCode(err, ldap.LDAPResultAttributeOrValueExists):
		return ErrorCategoryConflict
	default:
		return ErrorCategoryUnknown
	}
}

// IsAuthenticationError checks for an invalid-credentials condition.
func IsAuthenticationError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryAuthentication
}

// IsNotFoundError checks for a no-such-object condition.
func IsNotFoundError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryNotFound
}

// IsConflictError checks for an already-exists condition.
func IsConflictError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryConflict
}

// IsPresetRequired checks whether a call needs a registered return value.
func IsPresetRequired(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryPresetRequired
}
