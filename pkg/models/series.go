package models

// Series is the canonical catalog record for one show. The store assigns
// ID on first save; Title is unique (case-sensitive) across the catalog.
type Series struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	TotalSeasons int      `json:"total_seasons"`
	Rating       float64  `json:"rating"`
	Poster       string   `json:"poster,omitempty"`
	Category     Category `json:"category"`
	Cast         string   `json:"cast,omitempty"`
	Synopsis     string   `json:"synopsis,omitempty"`

	// Episodes is the owned, ordered collection. Saving a series replaces
	// the stored set with this one; an empty/nil slice leaves the catalog
	// entry without episodes.
	Episodes []Episode `json:"episodes,omitempty"`
}

// Episode belongs to exactly one Series. SeriesID is a back-reference
// only; the series owns the episode, never the other way around.
type Episode struct {
	ID       int64   `json:"id"`
	SeriesID int64   `json:"series_id"`
	Season   int     `json:"season"`
	Number   int     `json:"number"`
	Title    string  `json:"title"`
	Rating   float64 `json:"rating"`
}

// AttachEpisodes sets the episode collection and stamps the back-reference
// on every entry. Full replace, not a merge.
func (s *Series) AttachEpisodes(eps []Episode) {
	for i := range eps {
		eps[i].SeriesID = s.ID
	}
	s.Episodes = eps
}
