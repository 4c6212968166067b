package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// runtimeServer serves movie details with fixed runtimes and failing IDs.
func runtimeServer(t *testing.T, runtimes map[int64]int, failing map[int64]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int64
		if _, err := fmt.Sscanf(r.URL.Path, "/movie/%d", &id); err != nil {
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if failing[id] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if len(r.URL.Path) > len(fmt.Sprintf("/movie/%d", id)) {
			// Credits request.
			w.Write([]byte(`{"cast": [], "crew": []}`))
			return
		}
		fmt.Fprintf(w, `{"id": %d, "title": "Movie %d", "runtime": %d}`, id, id, runtimes[id])
	}))
}

func TestPickByRuntimeWithoutHintReturnsFirst(t *testing.T) {
	client := newTestClient("http://unused.invalid", "key-1")
	results := []SearchResult{{ID: 11}, {ID: 22}}
	if got := client.PickByRuntime(context.Background(), results, 0); got != 11 {
		t.Fatalf("pick = %d, want first result", got)
	}
}

func TestPickByRuntimeSingleResult(t *testing.T) {
	client := newTestClient("http://unused.invalid", "key-1")
	if got := client.PickByRuntime(context.Background(), []SearchResult{{ID: 7}}, 120); got != 7 {
		t.Fatalf("pick = %d", got)
	}
}

func TestPickByRuntimeChoosesClosest(t *testing.T) {
	srv := runtimeServer(t, map[int64]int{1: 90, 2: 148, 3: 200}, nil)
	defer srv.Close()

	client := newTestClient(srv.URL, "key-1")
	results := []SearchResult{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := client.PickByRuntime(context.Background(), results, 150); got != 2 {
		t.Fatalf("pick = %d, want the 148-minute candidate", got)
	}
}

func TestPickByRuntimeSwallowsCandidateFailures(t *testing.T) {
	srv := runtimeServer(t, map[int64]int{2: 95, 3: 140}, map[int64]bool{1: true})
	defer srv.Close()

	client := newTestClient(srv.URL, "key-1")
	results := []SearchResult{{ID: 1}, {ID: 2}, {ID: 3}}
	if got := client.PickByRuntime(context.Background(), results, 92); got != 2 {
		t.Fatalf("pick = %d, want the surviving 95-minute candidate", got)
	}
}

func TestPickByRuntimeAllFailuresFallsBackToFirst(t *testing.T) {
	srv := runtimeServer(t, nil, map[int64]bool{1: true, 2: true})
	defer srv.Close()

	client := newTestClient(srv.URL, "key-1")
	results := []SearchResult{{ID: 1}, {ID: 2}}
	if got := client.PickByRuntime(context.Background(), results, 100); got != 1 {
		t.Fatalf("pick = %d, want fallback to first", got)
	}
}

func TestPickByRuntimeLimitsDetailFetches(t *testing.T) {
	fetched := map[int64]bool{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id int64
		fmt.Sscanf(r.URL.Path, "/movie/%d", &id)
		fetched[id] = true
		fmt.Fprintf(w, `{"id": %d, "runtime": 100}`, id)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "key-1")
	var results []SearchResult
	for i := int64(1); i <= 8; i++ {
		results = append(results, SearchResult{ID: i})
	}
	client.PickByRuntime(context.Background(), results, 100)
	for i := int64(6); i <= 8; i++ {
		if fetched[i] {
			t.Fatalf("candidate %d beyond the top 5 was fetched", i)
		}
	}
}
