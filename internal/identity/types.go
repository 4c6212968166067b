package identity

// MediaKind distinguishes audio disc identification from video identification.
type MediaKind string

const (
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// Source records which strategy produced a release candidate.
type Source string

const (
	SourceFingerprint     Source = "fingerprint"
	SourceRecordingLookup Source = "recording-lookup"
	SourceNameSearch      Source = "name-search"
)

// Request describes one disc or file to identify. It is created once per
// disc by the caller and never mutated by the engine.
type Request struct {
	MediaKind MediaKind

	// TitleHint is the raw disc or file label. May be empty.
	TitleHint string

	// TargetTrackCount is the number of tracks on the disc, when known.
	// Zero means no target.
	TargetTrackCount int

	// MeasuredTrackDurations holds per-track seconds in disc order.
	// Audio only.
	MeasuredTrackDurations []float64

	// EstimatedRuntimeMinutes is the probed main-feature runtime.
	// Video only. Zero means no estimate.
	EstimatedRuntimeMinutes float64

	// SampleFilePath points at one representative file used for
	// fingerprinting. May be empty when the caller supplies a
	// pre-computed fingerprint instead.
	SampleFilePath string
}

// FingerprintData is the Chromaprint output for a single audio file.
type FingerprintData struct {
	DurationSeconds int
	Fingerprint     string
}

// AcoustIDMatch is a single qualifying recording returned by the AcoustID
// lookup service. ReleaseID and Album may be empty when the recording has no
// linked release groups.
type AcoustIDMatch struct {
	RecordingID string
	Title       string
	Artist      string
	ReleaseID   string
	Album       string
	Score       float64
}

// TrackDescriptor is one canonical track as reported by the catalog.
// Number is kept as provided and is not guaranteed contiguous across media
// boundaries. DurationMS of zero means the catalog has no duration.
type TrackDescriptor struct {
	Number     string
	Title      string
	DurationMS int
}

// ReleaseCandidate is a fully or partially resolved catalog release.
// Once resolved, TrackCount equals len(Tracks).
type ReleaseCandidate struct {
	ID          string
	Title       string
	Artist      string
	Year        string
	Label       string
	TrackCount  int
	Tracks      []TrackDescriptor
	CoverArtURL string
	Source      Source
}

// MovieDetail is a resolved video identification from the movie catalog.
type MovieDetail struct {
	TMDBID         int64
	Title          string
	OriginalTitle  string
	Year           string
	Overview       string
	RuntimeMinutes int
	Genres         []string
	Rating         float64
	PosterPath     string
	BackdropPath   string
	CollectionName string
	Director       string
	Cast           []string
}

// FileDurationRecord pairs an opaque file handle with its measured duration.
type FileDurationRecord struct {
	FileRef         string
	MeasuredSeconds float64
}

// UnmatchedFile records a file that found no acceptable track, with its
// best-attempt difference for diagnostics.
type UnmatchedFile struct {
	FileIndex       int
	BestDiffSeconds float64
}

// ReconciliationMapping maps file indices to track indices. Both sides are
// unique: no file or track index appears twice.
type ReconciliationMapping struct {
	Assignments map[int]int
	Unmatched   []UnmatchedFile
}

// TrackDurationsSeconds returns the candidate's canonical durations in
// seconds, or ok=false when any track lacks duration data.
func (c *ReleaseCandidate) TrackDurationsSeconds() ([]float64, bool) {
	if c == nil || len(c.Tracks) == 0 {
		return nil, false
	}
	out := make([]float64, len(c.Tracks))
	for i, t := range c.Tracks {
		if t.DurationMS <= 0 {
			return nil, false
		}
		out[i] = float64(t.DurationMS) / 1000.0
	}
	return out, true
}
