package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"seriehub/internal/provider"
	"seriehub/pkg/models"
)

// seasonsFetcher serves canned seasons and records every call.
func seasonsFetcher(t *testing.T, counts []int, calls *[]int) SeasonFetcher {
	t.Helper()
	return func(ctx context.Context, title string, season int) (*provider.SeasonPayload, error) {
		*calls = append(*calls, season)
		if season < 1 || season > len(counts) {
			return nil, fmt.Errorf("no season %d", season)
		}

		payload := &provider.SeasonPayload{
			Title:    title,
			Season:   strconv.Itoa(season),
			Response: "True",
		}
		for i := 1; i <= counts[season-1]; i++ {
			payload.Episodes = append(payload.Episodes, provider.EpisodePayload{
				Title:   fmt.Sprintf("S%dE%d", season, i),
				Episode: strconv.Itoa(i),
				Rating:  "7.0",
			})
		}
		return payload, nil
	}
}

func TestAggregateEpisodesOrderAndCount(t *testing.T) {
	series := &models.Series{Title: "Test Show", TotalSeasons: 2}

	var calls []int
	eps, err := AggregateEpisodes(context.Background(), series, seasonsFetcher(t, []int{3, 4}, &calls))
	if err != nil {
		t.Fatalf("AggregateEpisodes failed: %v", err)
	}

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Fatalf("season fetches = %v, want [1 2]", calls)
	}
	if len(eps) != 7 {
		t.Fatalf("expected 7 episodes, got %d", len(eps))
	}

	wantSeasons := []int{1, 1, 1, 2, 2, 2, 2}
	for i, e := range eps {
		if e.Season != wantSeasons[i] {
			t.Errorf("episode %d season = %d, want %d", i, e.Season, wantSeasons[i])
		}
	}

	// within a season, provider entry order is preserved
	for i := 1; i < len(eps); i++ {
		prev, cur := eps[i-1], eps[i]
		if cur.Season == prev.Season && cur.Number <= prev.Number {
			t.Errorf("episode order broken at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestAggregateEpisodesZeroSeasons(t *testing.T) {
	series := &models.Series{Title: "Mini", TotalSeasons: 0}

	var calls []int
	eps, err := AggregateEpisodes(context.Background(), series, seasonsFetcher(t, nil, &calls))
	if err != nil {
		t.Fatalf("AggregateEpisodes failed: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("expected no fetches, got %v", calls)
	}
	if len(eps) != 0 {
		t.Errorf("expected no episodes, got %d", len(eps))
	}
}

func TestAggregateEpisodesFailingSeasonAbortsAll(t *testing.T) {
	series := &models.Series{Title: "Flaky", TotalSeasons: 4}

	var calls []int
	inner := seasonsFetcher(t, []int{2, 2, 2, 2}, &calls)
	fetch := func(ctx context.Context, title string, season int) (*provider.SeasonPayload, error) {
		if season == 3 {
			calls = append(calls, season)
			return nil, errors.New("boom")
		}
		return inner(ctx, title, season)
	}

	eps, err := AggregateEpisodes(context.Background(), series, fetch)
	if err == nil {
		t.Fatal("expected aggregation to fail")
	}
	if eps != nil {
		t.Errorf("expected no partial episodes, got %d", len(eps))
	}

	var sfe *SeasonFetchError
	if !errors.As(err, &sfe) {
		t.Fatalf("error = %v, want SeasonFetchError", err)
	}
	if sfe.Season != 3 {
		t.Errorf("failing season = %d, want 3", sfe.Season)
	}

	// seasons after the failure are never fetched
	if len(calls) != 3 {
		t.Errorf("season fetches = %v, want [1 2 3]", calls)
	}
}
