package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"seriehub/internal/provider"
)

// Serves data/mirror.json with OMDb's query interface (?t=title and
// ?t=title&Season=n), so every binary can run against a local provider.

func main() {
	dataPath := flag.String("data", "data/mirror.json", "mirror file path")
	addr := flag.String("addr", ":9000", "listen address")
	flag.Parse()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		b, err := os.ReadFile(*dataPath)
		if err != nil {
			http.Error(w, "cannot read mirror file: "+err.Error(), http.StatusInternalServerError)
			return
		}

		var mirror provider.MirrorFile
		if err := json.Unmarshal(b, &mirror); err != nil {
			http.Error(w, "mirror file invalid JSON: "+err.Error(), http.StatusInternalServerError)
			return
		}

		title := r.URL.Query().Get("t")
		entry := findEntry(mirror, title)
		if entry == nil {
			writeJSON(w, map[string]string{"Response": "False", "Error": "Series not found!"})
			return
		}

		seasonParam := r.URL.Query().Get("Season")
		if seasonParam == "" {
			writeJSON(w, entry.Series)
			return
		}

		season, err := strconv.Atoi(seasonParam)
		if err != nil || season < 1 || season > len(entry.Seasons) {
			writeJSON(w, map[string]string{"Response": "False", "Error": "Series or season not found!"})
			return
		}
		writeJSON(w, entry.Seasons[season-1])
	})

	log.Printf("mirror-server listening on %s (data: %s)", *addr, *dataPath)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

func findEntry(mirror provider.MirrorFile, title string) *provider.MirrorEntry {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return nil
	}
	for i := range mirror.Entries {
		if strings.ToLower(mirror.Entries[i].Series.Title) == title {
			return &mirror.Entries[i]
		}
	}
	// OMDb's t= lookup is forgiving; fall back to substring match.
	for i := range mirror.Entries {
		if strings.Contains(strings.ToLower(mirror.Entries[i].Series.Title), title) {
			return &mirror.Entries[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
