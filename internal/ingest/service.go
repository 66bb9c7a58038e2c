package ingest

import (
	"context"
	"fmt"

	"seriehub/internal/catalog"
	"seriehub/internal/events"
	"seriehub/internal/provider"
	"seriehub/pkg/models"
)

// Fetcher is the provider boundary the ingestion service consumes.
// *provider.Client implements it; tests swap in canned payloads.
type Fetcher interface {
	FetchSeries(ctx context.Context, title string) (*provider.SeriesPayload, error)
	FetchSeason(ctx context.Context, title string, season int) (*provider.SeasonPayload, error)
}

// Service wires the provider to the catalog store and emits feed events
// on successful ingests. Hub may be nil.
type Service struct {
	Fetcher Fetcher
	Repo    *catalog.Repo
	Hub     *events.Hub
}

func NewService(fetcher Fetcher, repo *catalog.Repo, hub *events.Hub) *Service {
	return &Service{Fetcher: fetcher, Repo: repo, Hub: hub}
}

// IngestSeries fetches one series by title, normalizes it, and persists
// it as a new catalog entry.
func (s *Service) IngestSeries(ctx context.Context, title string) (*models.Series, error) {
	payload, err := s.Fetcher.FetchSeries(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("fetch series %q: %w", title, err)
	}

	series, err := NormalizeSeries(payload)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Save(ctx, series); err != nil {
		return nil, err
	}

	s.Hub.Broadcast(events.SeriesSaved(series))
	return series, nil
}

// IngestEpisodes fetches every season of an already stored series and
// replaces its episode collection. Nothing is written when any season
// fails.
func (s *Service) IngestEpisodes(ctx context.Context, series *models.Series) (*models.Series, error) {
	episodes, err := AggregateEpisodes(ctx, series, s.Fetcher.FetchSeason)
	if err != nil {
		return nil, fmt.Errorf("aggregate %q: %w", series.Title, err)
	}

	series.AttachEpisodes(episodes)
	if err := s.Repo.Save(ctx, series); err != nil {
		return nil, err
	}

	s.Hub.Broadcast(events.EpisodesUpdated(series))
	return series, nil
}
