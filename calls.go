package mockldap

import (
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Call records one public operation: its method name and the named arguments
// it was invoked with, defaulted arguments included.
type Call struct {
	Method string
	Args   map[string]any
}

// record appends a call to the ledger before any other processing happens,
// preserving invocation order.
func (m *MockLDAP) record(method string, args map[string]any) {
	m.calls = append(m.calls, Call{Method: method, Args: args})

	fields := map[string]any{
		"session_id": m.sessionID.String(),
		"method":     method,
		"args":       sanitizeFields(args),
	}
	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Recorded call", fields)
}

// Calls returns the ordered list of calls made since the last reset.
func (m *MockLDAP) Calls() []Call {
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Methods returns just the method names of the calls made since the last
// reset, in invocation order.
func (m *MockLDAP) Methods() []string {
	names := make([]string, len(m.calls))
	for i, call := range m.calls {
		names[i] = call.Method
	}
	return names
}
