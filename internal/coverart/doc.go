// Package coverart fetches artwork URLs from the Cover Art Archive.
// Art is decoration, not evidence: callers treat a failed lookup as a
// missing URL, never as a failed identification.
package coverart
