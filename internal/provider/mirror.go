package provider

// Mirror file format shared by cmd/export-mirror (writer) and
// cmd/mirror-server (reader): one entry per series, payloads exactly as
// OMDb would serve them.

type MirrorEntry struct {
	Series  SeriesPayload   `json:"series"`
	Seasons []SeasonPayload `json:"seasons"`
}

type MirrorFile struct {
	Entries []MirrorEntry `json:"entries"`
}
