// Package session provides the Redis-backed session presence store consumed
// by guards.RequireSession.
//
// The store tracks only presence: a key exists for the lifetime of a
// session and disappears on expiry or revocation. It holds no claims, no
// user data, and no navigation state — guards that need identity pair it
// with the token guard.
//
// # What this package must NOT do
//
//   - Make navigation decisions. It answers "is this session alive" and
//     nothing else; redirect-vs-cancel policy belongs to the guard.
//   - Cache lookups. Every Active call is one Redis round-trip so that
//     revocation takes effect on the next navigation.
package session
