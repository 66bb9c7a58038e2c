package events

import (
	"time"

	"github.com/google/uuid"

	"seriehub/pkg/models"
)

const (
	SeriesSavedType     = "series.saved"
	EpisodesUpdatedType = "episodes.updated"
)

// CatalogEvent is broadcast to every connected feed client after a
// successful ingest.
type CatalogEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	SeriesID int64     `json:"series_id"`
	Title    string    `json:"title"`
	Episodes int       `json:"episodes,omitempty"`
	At       time.Time `json:"at"`
}

func SeriesSaved(s *models.Series) CatalogEvent {
	return CatalogEvent{
		ID:       uuid.NewString(),
		Type:     SeriesSavedType,
		SeriesID: s.ID,
		Title:    s.Title,
		At:       time.Now().UTC(),
	}
}

func EpisodesUpdated(s *models.Series) CatalogEvent {
	return CatalogEvent{
		ID:       uuid.NewString(),
		Type:     EpisodesUpdatedType,
		SeriesID: s.ID,
		Title:    s.Title,
		Episodes: len(s.Episodes),
		At:       time.Now().UTC(),
	}
}
