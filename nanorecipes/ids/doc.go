// Package ids generates and resolves recipe identifiers.
//
//	Generation
//
// Stored identifiers are opaque strings produced by a Generator. The default
// generator emits random UUIDs. Tests inject a Sequence so that identifiers
// are predictable ("r-1", "r-2", ...).
//
//	Resolution
//
// Typing a UUID at a prompt is tedious, so user-facing references are
// resolved against the current collection order:
//
//   - an exact identifier always wins
//   - a bare number N selects the N-th recipe of the listing (1-based)
//   - otherwise a prefix of at least MinPrefixLength characters selects the
//     single identifier that starts with it
//
// A prefix matching more than one identifier is an error rather than a guess.
package ids
