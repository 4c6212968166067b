// Package reconcile validates catalog candidates against measured disc
// durations and assigns physical files to canonical tracks.
//
// Validation is an average gate: the mean absolute per-track difference must
// stay within a tolerance. A single badly mismatched track can be absorbed by
// otherwise-good alignment; that permissiveness is intentional and documented
// on Validator.
//
// Reconciliation is greedy by default (GreedyNearestDuration): files are
// processed in disc order and each takes the unused track with the nearest
// duration. The greedy walk is order-dependent and not guaranteed globally
// optimal. OptimalDuration solves the same assignment with the Hungarian
// algorithm for callers that need the minimum-total-difference pairing; it is
// a separate implementation of the same interface, never swapped in silently.
package reconcile
