// Package token implements the signed-claim layer of the credential service:
// an HS256 codec over a shared secret, a purpose-scoped issuer with
// per-purpose default lifetimes, and a verifier that layers expiry and scope
// enforcement on top of signature verification.
//
// The codec is deliberately narrow: Decode proves authenticity and nothing
// else. Expiry and scope checks belong to the Verifier so that callers that
// need the legacy scope-less confirmation decode can still reuse the same
// authenticity path.
package token
