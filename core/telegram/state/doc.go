// Package state keeps per-user conversation values in memory and serializes
// access to each user's value. It is domain-agnostic so it can be reused
// across bots.
package state
