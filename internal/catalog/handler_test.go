package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"seriehub/pkg/models"
)

// stubIngester returns canned results so handler tests do not need a
// live provider.
type stubIngester struct {
	series *models.Series
	err    error
}

func (s *stubIngester) IngestSeries(ctx context.Context, title string) (*models.Series, error) {
	return s.series, s.err
}

func (s *stubIngester) IngestEpisodes(ctx context.Context, series *models.Series) (*models.Series, error) {
	return s.series, s.err
}

func setupRouter(t *testing.T, ing Ingester) (*gin.Engine, *Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := setupTestRepo(t)
	h := NewHandler(repo, ing)

	router := gin.New()
	h.RegisterRoutes(router.Group("/series"), router.Group("/episodes"))
	return router, repo
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListSeries(t *testing.T) {
	router, repo := setupRouter(t, &stubIngester{})
	mustSave(t, repo, &models.Series{Title: "Chernobyl", Rating: 9.4, Category: models.CategoryDrama})

	w := doRequest(router, http.MethodGet, "/series", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Total int             `json:"total"`
		Items []models.Series `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("total = %d, items = %d", resp.Total, len(resp.Items))
	}
	if resp.Items[0].Title != "Chernobyl" {
		t.Errorf("title = %q", resp.Items[0].Title)
	}
}

func TestSearchSeries(t *testing.T) {
	router, repo := setupRouter(t, &stubIngester{})
	mustSave(t, repo, &models.Series{Title: "Peaky Blinders", Category: models.CategoryCrime})

	w := doRequest(router, http.MethodGet, "/series/search?q=peaky", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/series/search?q=unknown", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("miss status = %d, want 404", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/series/search", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty-q status = %d, want 400", w.Code)
	}
}

func TestByCategoryAcceptsBothAliases(t *testing.T) {
	router, repo := setupRouter(t, &stubIngester{})
	mustSave(t, repo, &models.Series{Title: "Brooklyn Nine-Nine", Category: models.CategoryComedy})

	for _, name := range []string{"Comedy", "Comedia", "comedy"} {
		w := doRequest(router, http.MethodGet, "/series/categories/"+name, "")
		if w.Code != http.StatusOK {
			t.Errorf("%q status = %d", name, w.Code)
			continue
		}
		var resp struct {
			Total int `json:"total"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Total != 1 {
			t.Errorf("%q total = %d, want 1", name, resp.Total)
		}
	}

	w := doRequest(router, http.MethodGet, "/series/categories/Documentary", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want 400", w.Code)
	}
}

func TestTopSeriesEndpoint(t *testing.T) {
	router, repo := setupRouter(t, &stubIngester{})
	for i := 0; i < 7; i++ {
		mustSave(t, repo, &models.Series{
			Title:    fmt.Sprintf("Show %d", i),
			Rating:   float64(i),
			Category: models.CategoryDrama,
		})
	}

	w := doRequest(router, http.MethodGet, "/series/top", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Items []models.Series `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 5 {
		t.Fatalf("items = %d, want 5", len(resp.Items))
	}
	if resp.Items[0].Title != "Show 6" {
		t.Errorf("top item = %q", resp.Items[0].Title)
	}
}

func TestIngestSeriesEndpoint(t *testing.T) {
	stub := &stubIngester{series: &models.Series{ID: 1, Title: "Dark", Category: models.CategoryDrama}}
	router, _ := setupRouter(t, stub)

	w := doRequest(router, http.MethodPost, "/series", `{"title":"Dark"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/series", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", w.Code)
	}
}

func TestIngestSeriesErrorStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", fmt.Errorf("save: %w", ErrDuplicateTitle), http.StatusConflict},
		{"unknown category", &models.CategoryNotFoundError{Text: "Documentary"}, http.StatusUnprocessableEntity},
		{"provider down", fmt.Errorf("omdb: do request: boom"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupRouter(t, &stubIngester{err: tc.err})
			w := doRequest(router, http.MethodPost, "/series", `{"title":"Whatever"}`)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestIngestEpisodesEndpoint(t *testing.T) {
	stub := &stubIngester{}
	router, repo := setupRouter(t, stub)

	s := &models.Series{Title: "Fargo", TotalSeasons: 1, Category: models.CategoryCrime}
	mustSave(t, repo, s)
	stub.series = s

	w := doRequest(router, http.MethodPost, "/episodes", fmt.Sprintf(`{"series_id":%d}`, s.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/episodes", `{"series_id":9999}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing series status = %d, want 404", w.Code)
	}
}

func TestTopEpisodesEndpoint(t *testing.T) {
	router, repo := setupRouter(t, &stubIngester{})

	s := &models.Series{Title: "Ranked", Category: models.CategoryDrama}
	s.AttachEpisodes([]models.Episode{
		{Season: 1, Number: 1, Title: "Low", Rating: 5},
		{Season: 1, Number: 2, Title: "High", Rating: 9},
	})
	mustSave(t, repo, s)

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/episodes/top?series_id=%d", s.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Series string           `json:"series"`
		Items  []models.Episode `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Series != "Ranked" {
		t.Errorf("series = %q", resp.Series)
	}
	if len(resp.Items) != 2 || resp.Items[0].Title != "High" {
		t.Errorf("items = %+v", resp.Items)
	}

	w = doRequest(router, http.MethodGet, "/episodes/top", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing series_id status = %d, want 400", w.Code)
	}
}
