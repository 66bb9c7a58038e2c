package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"seriehub/pkg/utils"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(utils.ProviderConfig{BaseURL: srv.URL, APIKey: "test-key"})
	return c, srv
}

func TestFetchSeries(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("t") != "Breaking Bad" {
			t.Errorf("t = %q", q.Get("t"))
		}
		if q.Get("type") != "series" {
			t.Errorf("type = %q", q.Get("type"))
		}
		if q.Get("apikey") != "test-key" {
			t.Errorf("apikey = %q", q.Get("apikey"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Title": "Breaking Bad",
			"totalSeasons": "5",
			"imdbRating": "9.5",
			"Genre": "Crime, Drama, Thriller",
			"Response": "True"
		}`))
	})
	defer srv.Close()

	payload, err := c.FetchSeries(context.Background(), "Breaking Bad")
	if err != nil {
		t.Fatalf("FetchSeries failed: %v", err)
	}
	if payload.Title != "Breaking Bad" {
		t.Errorf("title = %q", payload.Title)
	}
	if payload.TotalSeasons != "5" {
		t.Errorf("totalSeasons = %q", payload.TotalSeasons)
	}
	if payload.Genre != "Crime, Drama, Thriller" {
		t.Errorf("genre = %q", payload.Genre)
	}
}

func TestFetchSeriesNotFound(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Response":"False","Error":"Series not found!"}`))
	})
	defer srv.Close()

	_, err := c.FetchSeries(context.Background(), "No Such Show")
	if err == nil {
		t.Fatal("expected error for Response=False")
	}
}

func TestFetchSeason(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("Season") != "2" {
			t.Errorf("Season = %q", q.Get("Season"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Title": "Breaking Bad",
			"Season": "2",
			"Episodes": [
				{"Title": "Seven Thirty-Seven", "Episode": "1", "imdbRating": "8.6"},
				{"Title": "Grilled", "Episode": "2", "imdbRating": "9.2"}
			],
			"Response": "True"
		}`))
	})
	defer srv.Close()

	payload, err := c.FetchSeason(context.Background(), "Breaking Bad", 2)
	if err != nil {
		t.Fatalf("FetchSeason failed: %v", err)
	}
	if len(payload.Episodes) != 2 {
		t.Fatalf("episodes = %d, want 2", len(payload.Episodes))
	}
	if payload.Episodes[1].Title != "Grilled" {
		t.Errorf("episode title = %q", payload.Episodes[1].Title)
	}
}

func TestFetchSeriesServerError(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := c.FetchSeries(context.Background(), "Anything")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
