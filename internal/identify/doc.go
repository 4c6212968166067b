// Package identify composes the identification pipeline: fingerprint
// lookup, recording-to-release resolution, and name search for audio;
// title search with runtime disambiguation for video.
//
// Audio strategies run as an ordered list and the first acceptable,
// duration-validated candidate wins. No strategy failure is fatal; when
// every strategy passes, the engine returns an explicit no-match result
// that callers handle as a normal outcome.
package identify
