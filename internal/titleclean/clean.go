package titleclean

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bDISC\s*\d*\b`),
	regexp.MustCompile(`(?i)\bDVD\b`),
	regexp.MustCompile(`(?i)\bBLU\s*RAY\b`),
	regexp.MustCompile(`(?i)\bBD\b`),
	regexp.MustCompile(`(?i)\bCD\s*\d*\b`),
	regexp.MustCompile(`(?i)\bVOL(?:UME)?\s*\d*\b`),
	regexp.MustCompile(`(?i)\bWIDESCREEN\b`),
	regexp.MustCompile(`(?i)\bFULLSCREEN\b`),
	regexp.MustCompile(`(?i)\bSPECIAL\s*EDITION\b`),
	regexp.MustCompile(`(?i)\bREGION\s*\d\b`),
	regexp.MustCompile(`(?i)\bNTSC\b`),
	regexp.MustCompile(`(?i)\bPAL\b`),
	regexp.MustCompile(`(?i)\bTHE\s*MOVIE\b`),
}

var (
	timestampPattern    = regexp.MustCompile(`\b\d{8}[\s_]\d{6}\b`)
	trailingYearPattern = regexp.MustCompile(`\b(\d{4})\s*$`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	nonAlphaPattern     = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// genericTitles lists labels too common to disambiguate by text search.
var genericTitles = map[string]struct{}{
	"audio":    {},
	"cd":       {},
	"disc":     {},
	"disk":     {},
	"untitled": {},
	"unknown":  {},
	"track":    {},
	"album":    {},
	"music":    {},
	"my":       {},
	"test":     {},
	"new":      {},
}

// Clean normalizes a raw disc volume name into a reasonable search query.
// A trailing 4-digit token is kept only when it falls inside a plausible
// year window (1900-2099); anything else is treated as rip noise.
func Clean(raw string) string {
	title := strings.ReplaceAll(raw, "_", " ")

	for _, pattern := range noisePatterns {
		title = pattern.ReplaceAllString(title, "")
	}
	title = timestampPattern.ReplaceAllString(title, "")

	if loc := trailingYearPattern.FindStringSubmatchIndex(title); loc != nil {
		year, err := strconv.Atoi(title[loc[2]:loc[3]])
		if err == nil && (year < 1900 || year > 2099) {
			title = title[:loc[0]]
		}
	}

	title = strings.TrimSpace(whitespacePattern.ReplaceAllString(title, " "))
	if title == "" {
		return strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	}
	return title
}

// AggressiveClean is the fallback used when the standard cleaning produced no
// search hits. It keeps letters only and drops single-character tokens apart
// from the standalone words "I" and "A".
func AggressiveClean(raw string) string {
	title := strings.ReplaceAll(raw, "_", " ")
	title = nonAlphaPattern.ReplaceAllString(title, "")

	words := make([]string, 0, 8)
	for _, word := range strings.Fields(title) {
		if len(word) > 1 || strings.ToUpper(word) == "I" || strings.ToUpper(word) == "A" {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return raw
	}
	return strings.Join(words, " ")
}

// Generic reports whether a cleaned title is in the generic stoplist or too
// short to disambiguate via text search.
func Generic(cleaned string) bool {
	if len(cleaned) <= 2 {
		return true
	}
	_, found := genericTitles[strings.ToLower(cleaned)]
	return found
}

// Display renders a cleaned title in title case for logs and CLI output.
func Display(cleaned string) string {
	return cases.Title(language.Und).String(strings.ToLower(strings.TrimSpace(cleaned)))
}
