package mockldap

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Args builds the positional argument list used to key a registered return
// value. Pass the arguments exactly as the operation receives them.
func Args(vs ...any) []any {
	return vs
}

// SetReturnValue registers a canned response for a method with a specific
// argument list. When the method is later called with equivalent arguments,
// the value is returned instead of running the built-in emulation; a value
// that is an error is returned as the call's error. Registering again for
// the same signature overwrites the previous value.
func (m *MockLDAP) SetReturnValue(method string, args []any, value any) error {
	key, err := presetKey(args)
	if err != nil {
		return fmt.Errorf("failed to encode preset arguments for %s: %w", method, err)
	}

	if m.returnValues[method] == nil {
		m.returnValues[method] = make(map[string]any)
	}
	m.returnValues[method][key] = value

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Registered return value", map[string]any{
		"session_id": m.sessionID.String(),
		"method":     method,
		"signature":  key,
	})

	return nil
}

// resolve looks up a registered return value. found is false on a miss, in
// which case the caller proceeds to its emulation. A stored error marker is
// surfaced through err.
func (m *MockLDAP) resolve(method string, args []any) (value any, found bool, err error) {
	key, keyErr := presetKey(args)
	if keyErr != nil {
		return nil, false, nil
	}

	v, ok := m.returnValues[method][key]
	if !ok {
		return nil, false, nil
	}
	if e, isErr := v.(error); isErr {
		return nil, true, e
	}
	return v, true, nil
}

// presetKey canonicalizes an argument list into a comparable lookup key.
// JSON encoding normalizes collection shapes, so a value registered with one
// slice representation is found when the call supplies another, and map
// arguments encode with sorted keys. The identical function runs at store
// and lookup time.
func presetKey(args []any) (string, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// presetTypeError reports a registered value whose type does not fit the
// operation it was registered for.
func presetTypeError(method string, value any, want string) error {
	return fmt.Errorf("preset return value for %s is %T, want %s", method, value, want)
}
