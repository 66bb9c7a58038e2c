package main

import (
	"encoding/json"
	"strings"
	"testing"

	"seriehub/internal/events"
	"seriehub/pkg/models"
)

func TestRenderLineCatalogEvents(t *testing.T) {
	saved := events.SeriesSaved(&models.Series{ID: 42, Title: "Breaking Bad"})
	b, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	out := renderLine(b)
	if !strings.Contains(out, "series saved") || !strings.Contains(out, `"Breaking Bad"`) || !strings.Contains(out, "id 42") {
		t.Errorf("rendered = %q", out)
	}

	s := &models.Series{ID: 7, Title: "Dark"}
	s.AttachEpisodes(make([]models.Episode, 10))
	updated := events.EpisodesUpdated(s)
	b, err = json.Marshal(updated)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	out = renderLine(b)
	if !strings.Contains(out, "episodes updated") || !strings.Contains(out, "10 episodes") {
		t.Errorf("rendered = %q", out)
	}
}

func TestRenderLinePassesThroughUnknown(t *testing.T) {
	welcome := `{"type":"welcome","message":"connected","clients":1}`
	if out := renderLine([]byte(welcome)); out != welcome {
		t.Errorf("welcome rendered as %q", out)
	}

	raw := "not json at all"
	if out := renderLine([]byte(raw)); out != raw {
		t.Errorf("raw line rendered as %q", out)
	}
}
