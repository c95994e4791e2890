// Package config reads trackverify settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/lehigh-university-libraries/trackverify/internal/gemini"
	"github.com/lehigh-university-libraries/trackverify/internal/ollama"
	"github.com/lehigh-university-libraries/trackverify/internal/openai"
	"github.com/lehigh-university-libraries/trackverify/internal/providers"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/netease"
	"github.com/lehigh-university-libraries/trackverify/internal/sources/qqmusic"
)

// DefaultHTTPTimeout applies to the music API clients.
const DefaultHTTPTimeout = 10 * time.Second

// Config holds everything the verification pipeline needs.
type Config struct {
	NetEaseHost   string
	QQMusicHost   string
	SpotifyID     string
	SpotifySecret string

	VisionProvider string
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	OllamaURL      string
	OllamaModel    string

	HTTPTimeout time.Duration
}

// Load reads the environment, filling in defaults.
func Load() Config {
	c := Config{
		NetEaseHost:    env("NETEASE_API_HOST", netease.DefaultHost),
		QQMusicHost:    env("QQ_MUSIC_API_HOST", qqmusic.DefaultHost),
		SpotifyID:      os.Getenv("SPOTIFY_ID"),
		SpotifySecret:  os.Getenv("SPOTIFY_SECRET"),
		VisionProvider: strings.ToLower(env("VISION_PROVIDER", providers.NameGemini)),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    env("GEMINI_MODEL", gemini.DefaultModel),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    env("OPENAI_MODEL", openai.DefaultModel),
		OllamaURL:      env("OLLAMA_URL", ollama.DefaultURL),
		OllamaModel:    env("OLLAMA_MODEL", ollama.DefaultModel),
		HTTPTimeout:    DefaultHTTPTimeout,
	}
	if s := os.Getenv("HTTP_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			c.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	return c
}

// SpotifyEnabled reports whether Spotify credentials are present.
func (c Config) SpotifyEnabled() bool {
	return c.SpotifyID != "" && c.SpotifySecret != ""
}

// Model returns the configured model for the vision provider.
func (c Config) Model() string {
	switch c.VisionProvider {
	case providers.NameOpenAI:
		return c.OpenAIModel
	case providers.NameOllama:
		return c.OllamaModel
	default:
		return c.GeminiModel
	}
}

// Override applies command-line provider and model choices. Empty values
// keep the environment's settings.
func (c Config) Override(provider, model string) Config {
	if provider != "" {
		c.VisionProvider = strings.ToLower(provider)
	}
	if model == "" {
		return c
	}
	switch c.VisionProvider {
	case providers.NameOpenAI:
		c.OpenAIModel = model
	case providers.NameOllama:
		c.OllamaModel = model
	default:
		c.GeminiModel = model
	}
	return c
}

// Provider builds the configured vision provider.
func (c Config) Provider() (providers.Provider, error) {
	switch c.VisionProvider {
	case providers.NameGemini:
		return gemini.New(c.GeminiAPIKey), nil
	case providers.NameOpenAI:
		return openai.New(c.OpenAIAPIKey), nil
	case providers.NameOllama:
		return ollama.New(c.OllamaURL), nil
	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported vision provider %q", c.VisionProvider),
			"VISION_PROVIDER must be gemini, openai or ollama",
		)
	}
}

// Validate reports settings that will make the pipeline fail outright.
// Missing Spotify credentials only disable that source.
func (c Config) Validate() error {
	if _, err := c.Provider(); err != nil {
		return err
	}
	switch c.VisionProvider {
	case providers.NameGemini:
		if c.GeminiAPIKey == "" {
			return errors.WithHint(errors.New("GEMINI_API_KEY is not set"), "add it to .env or switch VISION_PROVIDER")
		}
	case providers.NameOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.WithHint(errors.New("OPENAI_API_KEY is not set"), "add it to .env or switch VISION_PROVIDER")
		}
	}
	for name, host := range map[string]string{"NETEASE_API_HOST": c.NetEaseHost, "QQ_MUSIC_API_HOST": c.QQMusicHost} {
		if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
			return errors.WithHintf(errors.Newf("%s is not an http(s) URL: %q", name, host), "for example %s=http://localhost:3000", name)
		}
	}
	return nil
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
