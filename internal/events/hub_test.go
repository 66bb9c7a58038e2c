package events

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"seriehub/pkg/models"
)

func TestBroadcastDeliversJSONLine(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	t.Cleanup(func() { server.Close(); client.Close() })
	hub.Add(server)

	done := make(chan CatalogEvent, 1)
	go func() {
		line, err := bufio.NewReader(client).ReadBytes('\n')
		if err != nil {
			t.Errorf("read broadcast line: %v", err)
			return
		}
		var ev CatalogEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			t.Errorf("decode broadcast: %v", err)
			return
		}
		done <- ev
	}()

	hub.Broadcast(SeriesSaved(&models.Series{ID: 42, Title: "Breaking Bad"}))

	select {
	case got := <-done:
		if got.Type != SeriesSavedType {
			t.Errorf("type = %q", got.Type)
		}
		if got.SeriesID != 42 || got.Title != "Breaking Bad" {
			t.Errorf("event = %+v", got)
		}
		if got.ID == "" {
			t.Error("expected an event id")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	hub.Add(server)
	client.Close()
	server.Close()

	hub.Broadcast(EpisodesUpdated(&models.Series{ID: 1, Title: "Dark"}))
	if hub.Count() != 0 {
		t.Errorf("clients = %d, want 0 after failed write", hub.Count())
	}
}

func TestBroadcastOnNilHub(t *testing.T) {
	var hub *Hub
	hub.Broadcast(SeriesSaved(&models.Series{ID: 1, Title: "anything"}))
}
