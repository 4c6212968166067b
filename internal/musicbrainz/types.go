package musicbrainz

// Wire types for the MusicBrainz JSON web service. Only the fields the
// engine reads are declared; the service returns far more.

// Artist is a credited artist entity.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ArtistCredit is one entry of a release's artist credit list.
type ArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
	Artist     Artist `json:"artist"`
}

// Label is a record label entity.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LabelInfo pairs a label with a catalog number on a release.
type LabelInfo struct {
	CatalogNumber string `json:"catalog-number"`
	Label         Label  `json:"label"`
}

// Recording is the underlying recording behind a track.
type Recording struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Length int    `json:"length"` // milliseconds, 0 when unknown
}

// MediaTrack is one track on a medium.
type MediaTrack struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Title     string     `json:"title"`
	Length    int        `json:"length"` // milliseconds, 0 when unknown
	Position  int        `json:"position"`
	Recording *Recording `json:"recording"`
}

// Media is one physical medium of a release (a disc, a cassette side).
type Media struct {
	Format     string       `json:"format"`
	Position   int          `json:"position"`
	TrackCount int          `json:"track-count"`
	Tracks     []MediaTrack `json:"tracks"`
}

// ReleaseGroup groups the editions of one album.
type ReleaseGroup struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	PrimaryType      string   `json:"primary-type"`
	SecondaryTypes   []string `json:"secondary-types"`
	FirstReleaseDate string   `json:"first-release-date"`
}

// Release is a single catalog release. Score is only populated on search
// results, where the service reports its own relevance ranking.
type Release struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Status       string         `json:"status"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	LabelInfo    []LabelInfo    `json:"label-info"`
	Media        []Media        `json:"media"`
	ReleaseGroup *ReleaseGroup  `json:"release-group"`
	Score        int            `json:"score"`
}

// TotalTracks sums the track counts of all non-empty media.
func (r *Release) TotalTracks() int {
	total := 0
	for _, m := range r.Media {
		if m.TrackCount > 0 {
			total += m.TrackCount
		} else {
			total += len(m.Tracks)
		}
	}
	return total
}

// ArtistName renders the artist credit as one display string, honoring the
// catalog's join phrases ("feat.", " & ") when present.
func (r *Release) ArtistName() string {
	if len(r.ArtistCredit) == 0 {
		return ""
	}
	out := ""
	for i, credit := range r.ArtistCredit {
		name := credit.Name
		if name == "" {
			name = credit.Artist.Name
		}
		out += name
		if i < len(r.ArtistCredit)-1 {
			if credit.JoinPhrase != "" {
				out += credit.JoinPhrase
			} else {
				out += ", "
			}
		}
	}
	return out
}

// Year extracts the four-digit year from the release date, falling back to
// the release group's first release date.
func (r *Release) Year() string {
	for _, date := range []string{r.Date, firstReleaseDate(r.ReleaseGroup)} {
		if len(date) >= 4 {
			return date[:4]
		}
	}
	return ""
}

func firstReleaseDate(rg *ReleaseGroup) string {
	if rg == nil {
		return ""
	}
	return rg.FirstReleaseDate
}

// LabelName returns the first credited label, if any.
func (r *Release) LabelName() string {
	for _, info := range r.LabelInfo {
		if info.Label.Name != "" {
			return info.Label.Name
		}
	}
	return ""
}

type searchResponse struct {
	Count    int       `json:"count"`
	Releases []Release `json:"releases"`
}

type recordingResponse struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Releases []Release `json:"releases"`
}
