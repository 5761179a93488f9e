// Package session keeps per-user interview progress in memory.
// Sessions live for the lifetime of the process and are never removed.
package session
