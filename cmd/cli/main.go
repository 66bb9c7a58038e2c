package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"seriehub/internal/catalog"
	"seriehub/internal/ingest"
	"seriehub/internal/provider"
	"seriehub/pkg/database"
	"seriehub/pkg/models"
	"seriehub/pkg/utils"
)

// Interactive console front-end over the catalog. All decisions live in
// the store and the ingestion service; this loop only reads input and
// prints results.

const menu = `
1 - Search a series (fetch + store)
2 - Fetch episodes of a stored series
3 - Show stored series
4 - Find series by title
5 - Top 5 series
6 - Find series by category
7 - Filter series by seasons and rating
8 - Find episodes by title
9 - Top 5 episodes of a series

0 - Exit
`

type app struct {
	repo *catalog.Repo
	svc  *ingest.Service
	in   *bufio.Scanner
}

func main() {
	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)
	client := provider.NewClient(utils.LoadProviderConfig())

	a := &app{
		repo: repo,
		svc:  ingest.NewService(client, repo, nil),
		in:   bufio.NewScanner(os.Stdin),
	}
	a.run()
}

func (a *app) run() {
	ctx := context.Background()

	for {
		fmt.Println("###################################################")
		fmt.Print(menu)

		choice := a.prompt("Pick an option: ")
		switch choice {
		case "1":
			a.searchSeries(ctx)
		case "2":
			a.fetchEpisodes(ctx)
		case "3":
			a.showAll(ctx)
		case "4":
			a.findByTitle(ctx)
		case "5":
			a.topSeries(ctx)
		case "6":
			a.findByCategory(ctx)
		case "7":
			a.filterSeries(ctx)
		case "8":
			a.findEpisodes(ctx)
		case "9":
			a.topEpisodes(ctx)
		case "0":
			fmt.Println("Closing...")
			return
		default:
			fmt.Println("Invalid option")
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return "0"
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) searchSeries(ctx context.Context) {
	title := a.prompt("Series title to search: ")
	if title == "" {
		return
	}

	s, err := a.svc.IngestSeries(ctx, title)
	if err != nil {
		fmt.Printf("ingest failed: %v\n", err)
		return
	}
	printSeries(*s)
}

func (a *app) fetchEpisodes(ctx context.Context) {
	a.showAll(ctx)
	title := a.prompt("Which stored series do you want episodes for? ")

	s, err := a.repo.FindByTitleContains(ctx, title)
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	if s == nil {
		fmt.Println("Series not found")
		return
	}

	s, err = a.svc.IngestEpisodes(ctx, s)
	if err != nil {
		fmt.Printf("episode fetch failed: %v\n", err)
		return
	}

	fmt.Printf("Stored %d episodes of %q\n", len(s.Episodes), s.Title)
	for _, e := range s.Episodes {
		fmt.Printf("  S%02dE%02d  %-40s %.1f\n", e.Season, e.Number, e.Title, e.Rating)
	}
}

func (a *app) showAll(ctx context.Context) {
	series, err := a.repo.FindAll(ctx)
	if err != nil {
		fmt.Printf("list failed: %v\n", err)
		return
	}
	if len(series) == 0 {
		fmt.Println("Catalog is empty")
		return
	}
	for _, s := range series {
		printSeries(s)
	}
}

func (a *app) findByTitle(ctx context.Context) {
	title := a.prompt("Title to look up: ")

	s, err := a.repo.FindByTitleContains(ctx, title)
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	if s == nil {
		fmt.Println("Series not found")
		return
	}
	printSeries(*s)
}

func (a *app) topSeries(ctx context.Context) {
	top, err := a.repo.FindTopByRating(ctx, 5)
	if err != nil {
		fmt.Printf("top failed: %v\n", err)
		return
	}
	for _, s := range top {
		fmt.Printf("%-40s rating: %.1f\n", s.Title, s.Rating)
	}
}

func (a *app) findByCategory(ctx context.Context) {
	name := a.prompt("Category (e.g. Comedy / Comedia): ")

	cat, err := models.CategoryFromSpanish(name)
	if err != nil {
		cat, err = models.CategoryFromPrimary(name)
	}
	if err != nil {
		fmt.Printf("unknown category %q\n", name)
		return
	}

	series, err := a.repo.FindByCategory(ctx, cat)
	if err != nil {
		fmt.Printf("category lookup failed: %v\n", err)
		return
	}
	fmt.Printf("Series in category %s:\n", cat)
	for _, s := range series {
		printSeries(s)
	}
}

func (a *app) filterSeries(ctx context.Context) {
	// The filter is a fixed policy (<= 6 seasons, rating >= 7.5).
	series, err := a.repo.FindBySeasonsAndRating(ctx)
	if err != nil {
		fmt.Printf("filter failed: %v\n", err)
		return
	}
	fmt.Println("Filtered series:")
	for _, s := range series {
		fmt.Printf("%s * rating: %.1f * seasons: %d\n", s.Title, s.Rating, s.TotalSeasons)
	}
}

func (a *app) findEpisodes(ctx context.Context) {
	title := a.prompt("Episode title to look up: ")

	matches, err := a.repo.FindEpisodesByTitleContains(ctx, title)
	if err != nil {
		fmt.Printf("episode search failed: %v\n", err)
		return
	}
	for _, m := range matches {
		fmt.Printf("Series: %s  S%02dE%02d  %s  rating: %.1f\n",
			m.SeriesTitle, m.Season, m.Number, m.Title, m.Rating)
	}
}

func (a *app) topEpisodes(ctx context.Context) {
	title := a.prompt("Series whose top episodes you want: ")

	s, err := a.repo.FindByTitleContains(ctx, title)
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	if s == nil {
		fmt.Println("Series not found")
		return
	}

	top, err := a.repo.FindTopEpisodes(ctx, s.ID, 5)
	if err != nil {
		fmt.Printf("top episodes failed: %v\n", err)
		return
	}
	for _, e := range top {
		fmt.Printf("Series: %s # S%02dE%02d # %s # rating: %.1f\n",
			s.Title, e.Season, e.Number, e.Title, e.Rating)
	}
}

func printSeries(s models.Series) {
	fmt.Printf("[%d] %-40s %-8s seasons: %d rating: %.1f\n",
		s.ID, s.Title, s.Category, s.TotalSeasons, s.Rating)
}
