/*
Package mockldap is an in-memory stand-in for an LDAP client connection,
intended for exercising directory-backed code in unit tests without a live
server.

It deliberately stays simple: simulating too much of a real directory server
is a good way to build bogus tests on top of a buggy harness. Every call is
recorded with its arguments, and tests can pre-register a return value (or an
error) for a specific call signature via SetReturnValue. When a call has no
registered return value, a minimal emulation runs against an in-memory
directory: simple bind against a userPassword attribute, base-scope and
one-level searches with trivial filters, compare, add, modify, delete and
rename. Anything beyond that returns a PresetRequiredError, signalling that
the test must supply a canned answer.

Errors surfaced by the emulation are *ldap.Error values from
github.com/go-ldap/ldap/v3 with the appropriate result codes, so code under
test sees the same error shapes a real client library produces.

A MockLDAP instance is not safe for concurrent use; it assumes the
single-threaded test execution it is built for.
*/
package mockldap
