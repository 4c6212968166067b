// Package ratelimit implements the request discipline required by the
// remote catalog hosts: a minimum inter-request interval measured from
// dispatch time, plus exponential-backoff retries for transient failures.
//
// Each remote host gets its own Client (and therefore its own pacer state);
// the MusicBrainz and Cover Art Archive limiters are deliberately
// independent. When one Client is shared across concurrent callers the
// pacer's mutex keeps the aggregate rate inside the remote contract. Giving
// each caller its own Client multiplies the effective rate against the host;
// that trade-off belongs to the caller, not this package.
//
// The clock is injectable so tests can verify pacing and retry counts
// without real sleeps.
package ratelimit
