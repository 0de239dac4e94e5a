package mockldap

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// logOpError logs a failed operation with any LDAP-specific error detail
// attached.
func (m *MockLDAP) logOpError(operation string, err error, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any)
	}

	fields["session_id"] = m.sessionID.String()
	fields["operation"] = operation
	fields["error"] = err.Error()

	if ldapErr, ok := err.(*ldap.Error); ok {
		fields["ldap_result_code"] = ldapErr.ResultCode
		if ldapErr.Err != nil {
			fields["ldap_diagnostic_message"] = ldapErr.Err.Error()
		}
	}

	tflog.SubsystemError(m.logCtx, m.config.Subsystem, "Operation failed", sanitizeFields(fields))
}

// sanitizeFields removes credential material from log fields.
func sanitizeFields(fields map[string]any) map[string]any {
	sanitized := make(map[string]any, len(fields))

	sensitiveKeys := map[string]bool{
		"cred":         true,
		"credential":   true,
		"credentials":  true,
		"password":     true,
		"passwd":       true,
		"secret":       true,
		"userpassword": true,
	}

	for k, v := range fields {
		if sensitiveKeys[strings.ToLower(k)] {
			sanitized[k] = "[REDACTED]"
			continue
		}
		sanitized[k] = v
	}

	return sanitized
}
