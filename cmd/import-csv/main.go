package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"seriehub/internal/catalog"
	"seriehub/pkg/database"
	"seriehub/pkg/models"
)

// Seeds the catalog from the CSVs written by cmd/export-csv. Rows go
// through the store, so imports see the same uniqueness and category
// rules as ingested series.

func main() {
	var (
		seriesIn   = flag.String("series", "data/series.csv", "input CSV path for series")
		episodesIn = flag.String("episodes", "data/episodes.csv", "input CSV path for episodes")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)

	episodes, err := readEpisodes(*episodesIn)
	if err != nil {
		log.Fatalf("read episodes failed: %v", err)
	}

	n, err := importSeries(ctx, repo, *seriesIn, episodes)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d series from %s", n, *seriesIn)
}

func importSeries(ctx context.Context, repo *catalog.Repo, path string, episodes map[string][]models.Episode) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 7 || header[0] != "title" {
		return 0, fmt.Errorf("unexpected header %v", header)
	}

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row: %w", err)
		}

		category, err := models.ParseCategory(row[4])
		if err != nil {
			return count, fmt.Errorf("row %q: %w", row[0], err)
		}

		s := models.Series{
			Title:        row[0],
			TotalSeasons: atoiOrZero(row[1]),
			Rating:       atofOrZero(row[2]),
			Poster:       row[3],
			Category:     category,
			Cast:         row[5],
			Synopsis:     row[6],
		}

		// re-import updates in place instead of tripping the unique title
		existing, err := repo.GetByTitle(ctx, s.Title)
		if err != nil {
			return count, err
		}
		if existing != nil {
			s.ID = existing.ID
		}

		s.AttachEpisodes(episodes[s.Title])
		if err := repo.Save(ctx, &s); err != nil {
			return count, fmt.Errorf("save %q: %w", s.Title, err)
		}
		count++
	}
	return count, nil
}

func readEpisodes(path string) (map[string][]models.Episode, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // series-only import is fine
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 5 || header[0] != "series_title" {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	out := make(map[string][]models.Episode)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		out[row[0]] = append(out[row[0]], models.Episode{
			Season: atoiOrZero(row[1]),
			Number: atoiOrZero(row[2]),
			Title:  row[3],
			Rating: atofOrZero(row[4]),
		})
	}
	return out, nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
