package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"time"

	"seriehub/internal/events"
)

// Follows the catalog event feed and prints one human-readable line per
// ingest. Reconnects when the server goes away.

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP event feed address")
	flag.Parse()

	for {
		if err := follow(*addr); err != nil {
			log.Printf("[events-client] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func follow(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[events-client] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fmt.Println(renderLine(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return fmt.Errorf("feed closed")
}

// renderLine formats one feed line. Catalog events get a compact
// timestamped form; anything else (the welcome line, unknown types)
// passes through raw.
func renderLine(line []byte) string {
	var ev events.CatalogEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return string(line)
	}

	switch ev.Type {
	case events.SeriesSavedType:
		return fmt.Sprintf("%s  series saved     %q (id %d)",
			ev.At.Local().Format(time.TimeOnly), ev.Title, ev.SeriesID)
	case events.EpisodesUpdatedType:
		return fmt.Sprintf("%s  episodes updated %q (id %d): %d episodes",
			ev.At.Local().Format(time.TimeOnly), ev.Title, ev.SeriesID, ev.Episodes)
	default:
		return string(line)
	}
}
