package identify

import (
	"testing"

	"discern/internal/musicbrainz"
)

func mediaWithTracks(count int) []musicbrainz.Media {
	return []musicbrainz.Media{{TrackCount: count}}
}

func TestPickRecordingReleasePrefersTrackCountMatch(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-compilation", Media: mediaWithTracks(18),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album", SecondaryTypes: []string{"Compilation"}}},
		{ID: "rel-album", Media: mediaWithTracks(10),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album"}},
	}
	pick := pickRecordingRelease(releases, 10)
	if pick == nil || pick.ID != "rel-album" {
		t.Fatalf("pick = %+v, want rel-album", pick)
	}
}

func TestPickRecordingReleaseCountsAllMedia(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-two-disc", Media: []musicbrainz.Media{{TrackCount: 10}, {TrackCount: 8}},
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album"}},
		{ID: "rel-single-disc", Media: mediaWithTracks(10),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album"}},
	}
	pick := pickRecordingRelease(releases, 10)
	if pick == nil || pick.ID != "rel-single-disc" {
		t.Fatalf("pick = %+v, want the release whose full disc set has 10 tracks", pick)
	}
	pick = pickRecordingRelease(releases, 18)
	if pick == nil || pick.ID != "rel-two-disc" {
		t.Fatalf("pick = %+v, want the two-disc release for 18 tracks", pick)
	}
}

func TestPickRecordingReleaseTieKeepsInputOrder(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-first", Media: mediaWithTracks(10),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album"}},
		{ID: "rel-second", Media: mediaWithTracks(10),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Album"}},
	}
	for run := 0; run < 10; run++ {
		pick := pickRecordingRelease(releases, 10)
		if pick == nil || pick.ID != "rel-first" {
			t.Fatalf("run %d: pick = %+v, want stable first", run, pick)
		}
	}
}

func TestPickRecordingReleaseSkipsEmptyMedia(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-empty"},
		{ID: "rel-real", Media: mediaWithTracks(12)},
	}
	pick := pickRecordingRelease(releases, 0)
	if pick == nil || pick.ID != "rel-real" {
		t.Fatalf("pick = %+v, want the release with media", pick)
	}
}

func TestPickRecordingReleaseAllEmptyFallsBackToFirst(t *testing.T) {
	releases := []musicbrainz.Release{{ID: "rel-a"}, {ID: "rel-b"}}
	pick := pickRecordingRelease(releases, 10)
	if pick == nil || pick.ID != "rel-a" {
		t.Fatalf("pick = %+v, want raw first release", pick)
	}
}

func TestPickRecordingReleasePenalizesSingles(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-single", Media: mediaWithTracks(2),
			ReleaseGroup: &musicbrainz.ReleaseGroup{PrimaryType: "Single"}},
		{ID: "rel-plain", Media: mediaWithTracks(2)},
	}
	pick := pickRecordingRelease(releases, 0)
	if pick == nil || pick.ID != "rel-plain" {
		t.Fatalf("pick = %+v, want the unpenalized release", pick)
	}
}

func TestPickSearchReleaseExcludesTrackCountMismatch(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-wrong", Title: "Until the Whole World Hears", Media: mediaWithTracks(14)},
		{ID: "rel-right", Title: "Until the Whole World Hears", Media: mediaWithTracks(10)},
	}
	pick := pickSearchRelease(releases, "Until The Whole World Hears", 10)
	if pick == nil || pick.ID != "rel-right" {
		t.Fatalf("pick = %+v, want the track-count match", pick)
	}
}

func TestPickSearchReleaseExactTitleBreaksEvenField(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-deluxe", Title: "Until the Whole World Hears (Deluxe)", Media: mediaWithTracks(10)},
		{ID: "rel-exact", Title: "until the whole world hears", Media: mediaWithTracks(10)},
	}
	pick := pickSearchRelease(releases, "Until The Whole World Hears", 10)
	if pick == nil || pick.ID != "rel-exact" {
		t.Fatalf("pick = %+v, want the exact title match", pick)
	}
}

func TestPickSearchReleaseTieKeepsInputOrder(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-first", Title: "Other A", Media: mediaWithTracks(10)},
		{ID: "rel-second", Title: "Other B", Media: mediaWithTracks(10)},
	}
	for run := 0; run < 10; run++ {
		pick := pickSearchRelease(releases, "My Album", 10)
		if pick == nil || pick.ID != "rel-first" {
			t.Fatalf("run %d: pick = %+v, want stable first", run, pick)
		}
	}
}

func TestPickSearchReleaseAllExcludedFallsBackToFirst(t *testing.T) {
	releases := []musicbrainz.Release{
		{ID: "rel-a", Media: mediaWithTracks(8)},
		{ID: "rel-b", Media: mediaWithTracks(9)},
	}
	pick := pickSearchRelease(releases, "My Album", 10)
	if pick == nil || pick.ID != "rel-a" {
		t.Fatalf("pick = %+v, want raw first hit", pick)
	}
}

func TestPickSearchReleaseEmpty(t *testing.T) {
	if pick := pickSearchRelease(nil, "Anything", 0); pick != nil {
		t.Fatalf("pick = %+v, want nil for no hits", pick)
	}
}
