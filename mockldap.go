package mockldap

import (
	"context"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Entry maps attribute names to values. A value is either a single string or
// an ordered []string; both shapes are tolerated everywhere, matching how
// directory responses vary in practice.
type Entry map[string]any

// Directory maps distinguished names to their entries.
type Directory map[string]Entry

// Config holds tunables for a MockLDAP instance. Zero fields are filled with
// the tagged defaults at construction.
type Config struct {
	// Subsystem names the tflog subsystem all log output is written under.
	Subsystem string `default:"mockldap"`

	// PageSize sizes the paging control attached to asynchronous searches
	// that arrive without one.
	PageSize uint32 `default:"1000"`
}

// MockLDAP emulates an LDAP client connection against an in-memory
// directory. It records every call, serves pre-registered return values and
// falls back to a minimal emulation of simple operations.
type MockLDAP struct {
	directory Directory
	config    Config
	logCtx    context.Context
	sessionID uuid.UUID

	calls        []Call
	returnValues map[string]map[string]any
	options      map[string]any
	tlsEnabled   bool

	cookie       int
	asyncResults map[int]*asyncResult
}

// Option configures a MockLDAP instance.
type Option func(*MockLDAP)

// WithConfig supplies an explicit configuration. Zero fields still receive
// their defaults.
func WithConfig(cfg Config) Option {
	return func(m *MockLDAP) {
		m.config = cfg
	}
}

// WithLogContext supplies the context log output is emitted through. Tests
// that configure tflog on the context get structured logs; everything else
// gets silence.
func WithLogContext(ctx context.Context) Option {
	return func(m *MockLDAP) {
		m.logCtx = ctx
	}
}

// New creates a MockLDAP instance around the given directory contents. A nil
// directory starts empty. The map is owned by the instance afterwards.
//
//	directory := mockldap.Directory{
//		"uid=alice,ou=users,dc=example,dc=com": mockldap.Entry{
//			"uid":          "alice",
//			"userPassword": []string{"secret"},
//		},
//	}
func New(directory Directory, opts ...Option) (*MockLDAP, error) {
	m := &MockLDAP{
		directory:    directory,
		logCtx:       context.Background(),
		sessionID:    uuid.New(),
		asyncResults: make(map[int]*asyncResult),
	}
	if m.directory == nil {
		m.directory = Directory{}
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := defaults.Set(&m.config); err != nil {
		return nil, fmt.Errorf("failed to set default configuration: %w", err)
	}

	m.Reset()

	tflog.SubsystemDebug(m.logCtx, m.config.Subsystem, "Created mock LDAP instance", map[string]any{
		"session_id": m.sessionID.String(),
		"entries":    len(m.directory),
		"page_size":  m.config.PageSize,
	})

	return m, nil
}

// Reset clears the call ledger, registered return values, recorded options
// and the TLS flag. The directory contents survive; only replacing the
// instance discards them.
func (m *MockLDAP) Reset() {
	m.calls = nil
	m.returnValues = make(map[string]map[string]any)
	m.options = make(map[string]any)
	m.tlsEnabled = false
}

// Directory exposes the live directory contents for test assertions.
func (m *MockLDAP) Directory() Directory {
	return m.directory
}

// SessionID identifies this instance in log output.
func (m *MockLDAP) SessionID() uuid.UUID {
	return m.sessionID
}

// GetOption returns a value previously recorded via SetOption.
func (m *MockLDAP) GetOption(option string) (any, bool) {
	v, ok := m.options[option]
	return v, ok
}

// TLSEnabled reports whether StartTLS has been called since the last reset.
func (m *MockLDAP) TLSEnabled() bool {
	return m.tlsEnabled
}
