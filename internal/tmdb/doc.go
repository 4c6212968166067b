// Package tmdb wraps The Movie Database API for video identification:
// title search, movie detail, credits, and runtime-based disambiguation
// when a search returns several plausible hits.
package tmdb
