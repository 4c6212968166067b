package musicbrainz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"discern/internal/config"
)

type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.now = c.now.Add(d)
	c.slept += d
}

func newTestClient(t *testing.T, baseURL string) (*Client, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	client := New(config.MusicBrainz{
		BaseURL:          baseURL,
		UserAgent:        "discern-test/1.0",
		RateLimitSeconds: 1.1,
		MaxRetries:       3,
		TimeoutSeconds:   5,
		SearchLimit:      25,
	}, nil)
	client.Transport().WithClock(clock.Now, clock.Sleep)
	return client, clock
}

const releaseJSON = `{
	"id": "rel-1",
	"title": "The Dark Side of the Moon",
	"status": "Official",
	"date": "1973-03-01",
	"artist-credit": [{"name": "Pink Floyd", "artist": {"id": "a1", "name": "Pink Floyd"}}],
	"label-info": [{"catalog-number": "SHVL 804", "label": {"id": "l1", "name": "Harvest"}}],
	"media": [
		{
			"format": "CD",
			"position": 1,
			"track-count": 2,
			"tracks": [
				{"id": "t1", "number": "1", "title": "Speak to Me", "length": 90000, "position": 1},
				{"id": "t2", "number": "2", "length": 0, "position": 2,
					"recording": {"id": "r2", "title": "Breathe", "length": 163000}}
			]
		},
		{
			"format": "CD",
			"position": 2,
			"track-count": 1,
			"tracks": [
				{"id": "t3", "number": "1", "title": "Time", "length": 413000, "position": 1}
			]
		}
	]
}`

func TestReleaseByIDFlattensMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/release/rel-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if inc := r.URL.Query().Get("inc"); inc != "recordings artist-credits labels release-groups" {
			t.Errorf("inc = %q", inc)
		}
		w.Write([]byte(releaseJSON))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	candidate, err := client.ReleaseByID(context.Background(), "rel-1")
	if err != nil {
		t.Fatalf("release by id: %v", err)
	}
	if candidate.Title != "The Dark Side of the Moon" {
		t.Fatalf("title = %q", candidate.Title)
	}
	if candidate.Artist != "Pink Floyd" {
		t.Fatalf("artist = %q", candidate.Artist)
	}
	if candidate.Year != "1973" {
		t.Fatalf("year = %q", candidate.Year)
	}
	if candidate.Label != "Harvest" {
		t.Fatalf("label = %q", candidate.Label)
	}
	if candidate.TrackCount != 3 || len(candidate.Tracks) != 3 {
		t.Fatalf("track count = %d/%d, want 3", candidate.TrackCount, len(candidate.Tracks))
	}
	// Tracks from both media in order, with recording fallback on track 2.
	if candidate.Tracks[1].Title != "Breathe" || candidate.Tracks[1].DurationMS != 163000 {
		t.Fatalf("track 2 fallback: %+v", candidate.Tracks[1])
	}
	if candidate.Tracks[2].Title != "Time" {
		t.Fatalf("track 3 = %+v", candidate.Tracks[2])
	}
}

func TestSearchReleasesSendsQuotedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/release" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("query"); q != `release:"Until The Whole World Hears"` {
			t.Errorf("query = %q", q)
		}
		if limit := r.URL.Query().Get("limit"); limit != "25" {
			t.Errorf("limit = %q", limit)
		}
		w.Write([]byte(`{"count": 1, "releases": [
			{"id": "rel-9", "title": "Until the Whole World Hears", "score": 100,
				"media": [{"track-count": 10}]}
		]}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	releases, err := client.SearchReleases(context.Background(), "Until The Whole World Hears")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(releases) != 1 {
		t.Fatalf("results = %d", len(releases))
	}
	if releases[0].TotalTracks() != 10 {
		t.Fatalf("total tracks = %d", releases[0].TotalTracks())
	}
}

func TestRecordingReleasesDecodesScoringFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recording/rec-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": "rec-1", "title": "Breathe", "releases": [
			{"id": "rel-a", "title": "The Dark Side of the Moon",
				"media": [{"track-count": 10}],
				"release-group": {"id": "rg-a", "primary-type": "Album"}},
			{"id": "rel-b", "title": "Greatest Prog Hits",
				"media": [{"track-count": 18}],
				"release-group": {"id": "rg-b", "primary-type": "Album", "secondary-types": ["Compilation"]}}
		]}`))
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	releases, err := client.RecordingReleases(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("recording releases: %v", err)
	}
	if len(releases) != 2 {
		t.Fatalf("releases = %d", len(releases))
	}
	if releases[0].ReleaseGroup.PrimaryType != "Album" {
		t.Fatalf("primary type = %q", releases[0].ReleaseGroup.PrimaryType)
	}
	if len(releases[1].ReleaseGroup.SecondaryTypes) != 1 {
		t.Fatalf("secondary types = %v", releases[1].ReleaseGroup.SecondaryTypes)
	}
}

func TestConsecutiveLookupsArePaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "releases": []}`))
	}))
	defer srv.Close()

	client, clock := newTestClient(t, srv.URL)
	const calls = 3
	for i := 0; i < calls; i++ {
		if _, err := client.SearchReleases(context.Background(), "anything"); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	want := time.Duration(calls-1) * 1100 * time.Millisecond
	if clock.slept < want {
		t.Fatalf("slept %v, want at least %v across %d calls", clock.slept, want, calls)
	}
}

func TestArtistNameHonorsJoinPhrase(t *testing.T) {
	release := &Release{ArtistCredit: []ArtistCredit{
		{Name: "Queen", JoinPhrase: " & "},
		{Name: "David Bowie"},
	}}
	if got := release.ArtistName(); got != "Queen & David Bowie" {
		t.Fatalf("artist = %q", got)
	}
}

func TestYearFallsBackToReleaseGroup(t *testing.T) {
	release := &Release{ReleaseGroup: &ReleaseGroup{FirstReleaseDate: "1999-11-02"}}
	if got := release.Year(); got != "1999" {
		t.Fatalf("year = %q", got)
	}
	if got := (&Release{}).Year(); got != "" {
		t.Fatalf("year = %q, want empty", got)
	}
}
