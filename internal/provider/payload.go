package provider

// Raw payload shapes as OMDb returns them. Every numeric field arrives as
// text ("8.5", "3", or the "N/A" sentinel); parsing and defaulting happen
// in the ingest package, not here.

type SeriesPayload struct {
	Title        string `json:"Title"`
	TotalSeasons string `json:"totalSeasons"`
	Rating       string `json:"imdbRating"`
	Poster       string `json:"Poster"`
	Genre        string `json:"Genre"`
	Actors       string `json:"Actors"`
	Plot         string `json:"Plot"`

	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type SeasonPayload struct {
	Title    string           `json:"Title"`
	Season   string           `json:"Season"`
	Episodes []EpisodePayload `json:"Episodes"`

	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type EpisodePayload struct {
	Title   string `json:"Title"`
	Episode string `json:"Episode"`
	Rating  string `json:"imdbRating"`
}
