// Package credkit is the credential subsystem for an HTTP API: it issues,
// validates, and revokes scoped bearer tokens, hashes and verifies user
// secrets, rotates refresh credentials with reuse detection, and keeps a
// short-lived Redis-backed cache of authenticated-user records so session
// resolution avoids a user-store round trip on every request.
//
// The package is designed for concurrent server workloads: Service methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build]. Token issuance and verification are pure functions of
// their inputs, the shared secret, and the clock; the user cache is the one
// shared mutable resource and its operations are per-key atomic.
//
// # Architecture boundaries
//
// credkit is the public surface. It exposes [Service], [Builder], [Config],
// the error taxonomy, and value types. The user store, outbound email
// delivery, HTTP routing, and rate limiting are external collaborators
// reached through the [UserStore] and [EmailSender] interfaces and the
// middleware sub-package.
//
// # What this package must NOT do
//
//   - Expose the Redis client, snapshot encoding, or signing internals in
//     its public API.
//   - Create or mutate user records through the cache; the cache is strictly
//     read-through.
//   - Retry failed store or cache calls; failures surface to the boundary
//     and affect only the requesting operation.
package credkit
