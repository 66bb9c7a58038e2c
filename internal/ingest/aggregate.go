package ingest

import (
	"context"
	"fmt"

	"seriehub/internal/provider"
	"seriehub/pkg/models"
)

// SeasonFetcher fetches the raw payload for one season of a series.
type SeasonFetcher func(ctx context.Context, title string, season int) (*provider.SeasonPayload, error)

// SeasonFetchError reports which season aborted an aggregation.
type SeasonFetchError struct {
	Season int
	Err    error
}

func (e *SeasonFetchError) Error() string {
	return fmt.Sprintf("season %d fetch failed: %v", e.Season, e.Err)
}

func (e *SeasonFetchError) Unwrap() error { return e.Err }

// AggregateEpisodes fetches every season of the series in order (1..N),
// normalizes each entry, and returns the flattened list ordered by
// (season, provider entry order). On the first failing season the whole
// aggregation fails; episodes from earlier seasons are discarded so no
// partial set is ever attached.
func AggregateEpisodes(ctx context.Context, series *models.Series, fetch SeasonFetcher) ([]models.Episode, error) {
	episodes := make([]models.Episode, 0, series.TotalSeasons*8)

	for season := 1; season <= series.TotalSeasons; season++ {
		payload, err := fetch(ctx, series.Title, season)
		if err != nil {
			return nil, &SeasonFetchError{Season: season, Err: err}
		}

		for _, entry := range payload.Episodes {
			episodes = append(episodes, normalizeEpisode(season, entry))
		}
	}

	return episodes, nil
}
