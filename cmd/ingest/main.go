package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"seriehub/internal/catalog"
	"seriehub/internal/ingest"
	"seriehub/internal/provider"
	"seriehub/pkg/database"
	"seriehub/pkg/utils"
)

// One-shot ingestion: fetch each title from the provider, store it, then
// fetch and attach its episodes.

func main() {
	episodes := flag.Bool("episodes", true, "also fetch every season's episodes")
	flag.Parse()

	titles := flag.Args()
	if len(titles) == 0 {
		log.Fatal("usage: ingest [-episodes=false] <title> [title...]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)
	client := provider.NewClient(utils.LoadProviderConfig())
	svc := ingest.NewService(client, repo, nil)

	for _, title := range titles {
		log.Printf("[ingest] fetching %q", title)

		s, err := svc.IngestSeries(ctx, title)
		if errors.Is(err, catalog.ErrDuplicateTitle) {
			log.Printf("[ingest] %q already stored, skipping", title)
			continue
		}
		if err != nil {
			log.Fatalf("ingest %q failed: %v", title, err)
		}

		if !*episodes {
			continue
		}

		s, err = svc.IngestEpisodes(ctx, s)
		if err != nil {
			log.Fatalf("episodes of %q failed: %v", title, err)
		}
		log.Printf("[ingest] stored %q with %d episodes", s.Title, len(s.Episodes))
	}

	log.Println("done")
}
