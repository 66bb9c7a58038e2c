package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"seriehub/internal/provider"
	"seriehub/pkg/models"
)

// NormalizeSeries converts one raw provider payload into a canonical
// Series. Pure transformation, no side effects. A genre that resolves to
// no known category fails the whole normalization; no partial series.
func NormalizeSeries(payload *provider.SeriesPayload) (*models.Series, error) {
	category, err := models.CategoryFromPrimary(firstGenre(payload.Genre))
	if err != nil {
		return nil, fmt.Errorf("normalize series %q: %w", payload.Title, err)
	}

	return &models.Series{
		Title:        payload.Title,
		TotalSeasons: parseIntOrZero(payload.TotalSeasons),
		Rating:       parseRatingOrZero(payload.Rating),
		Poster:       payload.Poster,
		Category:     category,
		Cast:         payload.Actors,
		Synopsis:     payload.Plot,
	}, nil
}

// normalizeEpisode maps one raw season entry into an Episode. The season
// number comes from the aggregation loop, never from the entry itself.
func normalizeEpisode(season int, entry provider.EpisodePayload) models.Episode {
	return models.Episode{
		Season: season,
		Number: parseIntOrZero(entry.Episode),
		Title:  entry.Title,
		Rating: parseRatingOrZero(entry.Rating),
	}
}

// firstGenre takes the leading token of a comma-separated genre string.
func firstGenre(genre string) string {
	first, _, _ := strings.Cut(genre, ",")
	return strings.TrimSpace(first)
}

// parseRatingOrZero parses a rating string; empty text, OMDb's "N/A"
// sentinel, and anything non-numeric all default to 0 instead of failing
// the normalization.
func parseRatingOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
