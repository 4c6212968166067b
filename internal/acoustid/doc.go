// Package acoustid identifies audio by acoustic fingerprint. It wraps two
// collaborators: the fpcalc Chromaprint tool that turns an audio file into
// a fingerprint, and the AcoustID web service that maps fingerprints to
// catalog recordings.
//
// Fingerprint lookups are best-effort. Both pieces degrade to "unavailable"
// rather than failing identification: no API key, no fpcalc binary, and
// service errors all surface as errors the orchestrator skips past.
package acoustid
