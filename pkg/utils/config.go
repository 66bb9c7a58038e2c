package utils

import (
	"os"

	"github.com/joho/godotenv"
)

type ProviderConfig struct {
	BaseURL string
	APIKey  string
}

// LoadProviderConfig reads the metadata provider settings from the
// environment, with a .env file as fallback for local runs. The base URL
// can point at cmd/mirror-server for offline demos.
func LoadProviderConfig() ProviderConfig {
	// best effort; the env vars may already be set
	_ = godotenv.Load()

	base := os.Getenv("SERIEHUB_OMDB_BASE_URL")
	if base == "" {
		base = "https://www.omdbapi.com/"
	}

	return ProviderConfig{
		BaseURL: base,
		APIKey:  os.Getenv("SERIEHUB_OMDB_API_KEY"),
	}
}
