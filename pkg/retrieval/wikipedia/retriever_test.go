package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const searchBody = `{
	"query": {
		"search": [
			{"title": "Electric vehicle", "pageid": 1},
			{"title": "Electric car", "pageid": 2},
			{"title": "Battery electric vehicle", "pageid": 3}
		]
	}
}`

const extractBody = `{
	"query": {
		"pages": {
			"3": {"title": "Battery electric vehicle", "extract": "BEV text.", "fullurl": "https://en.wikipedia.org/wiki/Battery_electric_vehicle"},
			"1": {"title": "Electric vehicle", "extract": "EV text.", "fullurl": "https://en.wikipedia.org/wiki/Electric_vehicle"},
			"2": {"title": "Electric car", "extract": "Car text."}
		}
	}
}`

func newFakeWiki(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		switch r.URL.Query().Get("list") {
		case "search":
			fmt.Fprint(w, searchBody)
		default:
			if r.URL.Query().Get("prop") == "" {
				t.Errorf("unexpected request: %s", r.URL.String())
			}
			fmt.Fprint(w, extractBody)
		}
	}))
}

func TestSearchKeepsRankingAndSynthesizesURL(t *testing.T) {
	var requests int
	srv := newFakeWiki(t, &requests)
	defer srv.Close()

	r := NewRetriever(srv.URL)
	docs, err := r.Search(context.Background(), "Electric Vehicles", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}

	wantTitles := []string{"Electric vehicle", "Electric car", "Battery electric vehicle"}
	for i, want := range wantTitles {
		if docs[i].Title != want {
			t.Errorf("docs[%d].Title = %q, want %q", i, docs[i].Title, want)
		}
	}

	// "Electric car" has no fullurl in the response; it must be synthesized.
	if docs[1].SourceURL != "https://en.wikipedia.org/wiki/Electric_car" {
		t.Errorf("synthesized URL = %q", docs[1].SourceURL)
	}
	if docs[0].SourceURL != "https://en.wikipedia.org/wiki/Electric_vehicle" {
		t.Errorf("canonical URL = %q", docs[0].SourceURL)
	}
	if docs[0].Content != "EV text." {
		t.Errorf("content = %q", docs[0].Content)
	}
}

func TestSearchCachesResults(t *testing.T) {
	var requests int
	srv := newFakeWiki(t, &requests)
	defer srv.Close()

	r := NewRetriever(srv.URL)
	if _, err := r.Search(context.Background(), "Electric Vehicles", 5); err != nil {
		t.Fatalf("first search: %v", err)
	}
	if _, err := r.Search(context.Background(), "Electric Vehicles", 5); err != nil {
		t.Fatalf("second search: %v", err)
	}

	if requests != 2 { // one search + one extract call, second Search served from cache
		t.Errorf("upstream requests = %d, want 2", requests)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query": {"search": []}}`)
	}))
	defer srv.Close()

	r := NewRetriever(srv.URL)
	docs, err := r.Search(context.Background(), "zxqjv", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents, want 0", len(docs))
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewRetriever(srv.URL)
	if _, err := r.Search(context.Background(), "Electric Vehicles", 5); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestSynthesizeArticleURL(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Electric vehicle", "https://en.wikipedia.org/wiki/Electric_vehicle"},
		{"Battery electric vehicle", "https://en.wikipedia.org/wiki/Battery_electric_vehicle"},
		{"Solar", "https://en.wikipedia.org/wiki/Solar"},
	}

	for _, tt := range tests {
		if got := SynthesizeArticleURL(tt.title); got != tt.want {
			t.Errorf("SynthesizeArticleURL(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
