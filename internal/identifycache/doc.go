// Package identifycache persists fingerprint-to-release identifications in
// a small SQLite database so re-inserted discs skip the network entirely.
// The cache is optional: opened with an empty path, every operation becomes
// a no-op. Writes take a file lock so independent processes sharing one
// cache file do not interleave.
package identifycache
