package mockldap

// FilterMatchAll is the universal match-everything filter, the only filter
// the base-scope emulation accepts.
const FilterMatchAll = "(objectClass=*)"

// Result type markers, the BER application tags of the corresponding
// response messages as surfaced by native client libraries.
const (
	ResultTypeBind   = 97
	ResultTypeSearch = 101
	ResultTypeModify = 103
	ResultTypeAdd    = 105
	ResultTypeDelete = 107
	ResultTypeModDN  = 109
)

// ResultAny asks Result for the oldest pending asynchronous search result.
const ResultAny = -1

// Result is the success marker returned by write operations and binds.
type Result struct {
	Type int `json:"type"`

	// MessageID carries the ledger length at the time of an Add, a
	// deliberately weak uniqueness proxy rather than a real message-id
	// scheme. Zero for other operations.
	MessageID int `json:"message_id"`
}

// Attr is one attribute of an Add record. Vals is a string or []string; the
// shape is preserved in the stored entry.
type Attr struct {
	Type string `json:"type"`
	Vals any    `json:"vals"`
}

// Mod is a single modify operation. Op is one of the go-ldap modify
// constants (ldap.AddAttribute, ldap.DeleteAttribute,
// ldap.ReplaceAttribute). Vals is a string, []string, or nil.
type Mod struct {
	Op   uint   `json:"op"`
	Type string `json:"type"`
	Vals any    `json:"vals"`
}

