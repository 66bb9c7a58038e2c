package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"seriehub/pkg/database"
)

func main() {
	var (
		seriesOut   = flag.String("series", "data/series.csv", "output CSV path for series")
		episodesOut = flag.String("episodes", "data/episodes.csv", "output CSV path for episodes")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportSeries(ctx, db, *seriesOut); err != nil {
		log.Fatalf("export series failed: %v", err)
	}
	if err := exportEpisodes(ctx, db, *episodesOut); err != nil {
		log.Fatalf("export episodes failed: %v", err)
	}

	log.Printf("exported series to %s and episodes to %s", *seriesOut, *episodesOut)
}

func exportSeries(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"title", "total_seasons", "rating", "poster", "category", "cast", "synopsis"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT title, total_seasons, rating, poster, category, show_cast, synopsis
        FROM series
        ORDER BY id
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			title        string
			totalSeasons int
			rating       float64
			poster       string
			category     string
			cast         string
			synopsis     string
		)
		if err := rows.Scan(&title, &totalSeasons, &rating, &poster, &category, &cast, &synopsis); err != nil {
			return err
		}

		if err := w.Write([]string{
			title,
			strconv.Itoa(totalSeasons),
			strconv.FormatFloat(rating, 'f', -1, 64),
			poster,
			category,
			cast,
			synopsis,
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportEpisodes(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"series_title", "season", "number", "title", "rating"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT s.title, e.season, e.number, e.title, e.rating
        FROM episodes e
        JOIN series s ON s.id = e.series_id
        ORDER BY s.id, e.season, e.id
    `)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seriesTitle string
			season      int
			number      int
			title       string
			rating      float64
		)
		if err := rows.Scan(&seriesTitle, &season, &number, &title, &rating); err != nil {
			return err
		}

		if err := w.Write([]string{
			seriesTitle,
			strconv.Itoa(season),
			strconv.Itoa(number),
			title,
			strconv.FormatFloat(rating, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
