package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"seriehub/internal/catalog"
	"seriehub/internal/provider"
	"seriehub/pkg/database"
	"seriehub/pkg/models"
)

// Dumps the stored catalog back into provider payload shapes so
// cmd/mirror-server can replay it offline.

func main() {
	out := flag.String("out", "data/mirror.json", "output mirror file path")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)

	series, err := repo.FindAll(ctx)
	if err != nil {
		log.Fatalf("list series failed: %v", err)
	}

	mirror := provider.MirrorFile{Entries: make([]provider.MirrorEntry, 0, len(series))}
	for _, s := range series {
		full, err := repo.GetByID(ctx, s.ID)
		if err != nil {
			log.Fatalf("load %q failed: %v", s.Title, err)
		}
		mirror.Entries = append(mirror.Entries, toEntry(full))
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	b, err := json.MarshalIndent(mirror, "", "  ")
	if err != nil {
		log.Fatalf("marshal mirror: %v", err)
	}
	if err := os.WriteFile(*out, b, 0o644); err != nil {
		log.Fatalf("write mirror: %v", err)
	}

	log.Printf("exported %d series to %s", len(mirror.Entries), *out)
}

func toEntry(s *models.Series) provider.MirrorEntry {
	entry := provider.MirrorEntry{
		Series: provider.SeriesPayload{
			Title:        s.Title,
			TotalSeasons: strconv.Itoa(s.TotalSeasons),
			Rating:       formatRating(s.Rating),
			Poster:       s.Poster,
			Genre:        s.Category.PrimaryAlias(),
			Actors:       s.Cast,
			Plot:         s.Synopsis,
			Response:     "True",
		},
	}

	bySeason := make(map[int][]provider.EpisodePayload)
	maxSeason := 0
	for _, e := range s.Episodes {
		bySeason[e.Season] = append(bySeason[e.Season], provider.EpisodePayload{
			Title:   e.Title,
			Episode: strconv.Itoa(e.Number),
			Rating:  formatRating(e.Rating),
		})
		if e.Season > maxSeason {
			maxSeason = e.Season
		}
	}
	if s.TotalSeasons > maxSeason {
		maxSeason = s.TotalSeasons
	}

	for season := 1; season <= maxSeason; season++ {
		entry.Seasons = append(entry.Seasons, provider.SeasonPayload{
			Title:    s.Title,
			Season:   strconv.Itoa(season),
			Episodes: bySeason[season],
			Response: "True",
		})
	}
	return entry
}

func formatRating(r float64) string {
	if r == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", r)
}
