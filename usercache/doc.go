// Package usercache implements a time-boxed, Redis-backed read-through
// cache of authenticated-user records keyed by email.
//
// Cached values are versioned snapshots with an explicit schema, never live
// objects: a snapshot that fails to decode, or whose schema version is
// unknown, is treated as a cache miss and falls through to the loader. A
// loader result of "no such user" is never cached, so a user created a
// moment later is visible on the next resolve. The cache is strictly
// read-through; it is never the path by which a user record is created or
// mutated.
package usercache
