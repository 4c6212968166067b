package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"discern/internal/config"
	"discern/internal/identity"
)

func newTestClient(baseURL, apiKey string) *Client {
	client := New(config.TMDB{
		APIKey:         apiKey,
		BaseURL:        baseURL,
		Language:       "en-US",
		TimeoutSeconds: 5,
	}, nil)
	client.limiter.SetLimit(rate.Inf)
	return client
}

func TestSearchWithoutKeySkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").SearchMovie(context.Background(), "Inception", "")
	if !errors.Is(err, identity.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if requests != 0 {
		t.Fatalf("requests = %d, want 0", requests)
	}
}

func TestSearchMovieSendsParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "key-1" {
			t.Errorf("api_key = %q", q.Get("api_key"))
		}
		if q.Get("query") != "Inception" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("year") != "2010" {
			t.Errorf("year = %q", q.Get("year"))
		}
		if q.Get("language") != "en-US" {
			t.Errorf("language = %q", q.Get("language"))
		}
		w.Write([]byte(`{"results": [{"id": 27205, "title": "Inception", "release_date": "2010-07-15"}]}`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL, "key-1").SearchMovie(context.Background(), "Inception", "2010")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].ID != 27205 {
		t.Fatalf("results = %+v", results)
	}
}

func movieServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/27205", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 27205, "title": "Inception", "original_title": "Inception",
			"release_date": "2010-07-15", "overview": "A thief who steals corporate secrets.",
			"runtime": 148, "vote_average": 8.4,
			"poster_path": "/poster.jpg", "backdrop_path": "/backdrop.jpg",
			"genres": [{"name": "Action"}, {"name": "Science Fiction"}],
			"belongs_to_collection": null
		}`))
	})
	mux.HandleFunc("/movie/27205/credits", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"cast": [{"name": "Leonardo DiCaprio"}, {"name": "Joseph Gordon-Levitt"}],
			"crew": [{"name": "Emma Thomas", "job": "Producer"}, {"name": "Christopher Nolan", "job": "Director"}]
		}`))
	})
	return httptest.NewServer(mux)
}

func TestMovieDetailMapsFields(t *testing.T) {
	srv := movieServer(t)
	defer srv.Close()

	detail, err := newTestClient(srv.URL, "key-1").MovieDetail(context.Background(), 27205)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Title != "Inception" || detail.Year != "2010" {
		t.Fatalf("title/year = %q/%q", detail.Title, detail.Year)
	}
	if detail.RuntimeMinutes != 148 {
		t.Fatalf("runtime = %d", detail.RuntimeMinutes)
	}
	if len(detail.Genres) != 2 || detail.Genres[1] != "Science Fiction" {
		t.Fatalf("genres = %v", detail.Genres)
	}
	if detail.Director != "Christopher Nolan" {
		t.Fatalf("director = %q", detail.Director)
	}
	if len(detail.Cast) != 2 || detail.Cast[0] != "Leonardo DiCaprio" {
		t.Fatalf("cast = %v", detail.Cast)
	}
}

func TestMovieDetailSurvivesCreditsFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/99", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 99, "title": "Obscure Film", "release_date": "1987-01-01", "runtime": 90}`))
	})
	mux.HandleFunc("/movie/99/credits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	detail, err := newTestClient(srv.URL, "key-1").MovieDetail(context.Background(), 99)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Title != "Obscure Film" || detail.Director != "" {
		t.Fatalf("detail = %+v", detail)
	}
}
