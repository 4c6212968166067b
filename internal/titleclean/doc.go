// Package titleclean normalizes raw disc and file labels into search-worthy
// query strings.
//
// Clean strips the usual physical-media noise (disc/volume markers, format
// tokens, region codes, embedded rip timestamps) while keeping a plausible
// trailing year. AggressiveClean is the last-resort variant that reduces a
// label to bare words.
//
// Known limitation: noise stripping can reduce a legitimate short label to a
// single generic word (a disc literally named "Audio CD" cleans to "Audio"),
// which the generic-title stoplist only partially catches. Callers should
// treat Generic as a guard against unsearchable titles, not a guarantee.
package titleclean
