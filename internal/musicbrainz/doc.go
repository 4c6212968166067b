// Package musicbrainz wraps the MusicBrainz web service. The client is
// deliberately thin: it fetches and decodes releases, recordings, and search
// results, and converts releases to the engine's candidate shape. Choosing
// between candidates is the identifier's job, not this package's.
//
// All requests go through a shared rate-limited client so the catalog's
// one-request-per-second contract holds across lookups, searches, and
// recording fetches alike.
package musicbrainz
