package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NETEASE_API_HOST", "QQ_MUSIC_API_HOST", "SPOTIFY_ID", "SPOTIFY_SECRET",
		"VISION_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY",
		"OPENAI_MODEL", "OLLAMA_URL", "OLLAMA_MODEL", "HTTP_TIMEOUT_SECONDS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c := Load()
	assert.Equal(t, "http://localhost:3000", c.NetEaseHost)
	assert.Equal(t, "http://localhost:3001", c.QQMusicHost)
	assert.Equal(t, "gemini", c.VisionProvider)
	assert.Equal(t, "gemini-2.5-flash", c.Model())
	assert.Equal(t, DefaultHTTPTimeout, c.HTTPTimeout)
	assert.False(t, c.SpotifyEnabled())
	assert.ErrorContains(t, c.Validate(), "GEMINI_API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISION_PROVIDER", "Ollama")
	t.Setenv("OLLAMA_MODEL", "llava:13b")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("SPOTIFY_ID", "id")
	t.Setenv("SPOTIFY_SECRET", "secret")

	c := Load()
	assert.Equal(t, "ollama", c.VisionProvider)
	assert.Equal(t, "llava:13b", c.Model())
	assert.Equal(t, 3*time.Second, c.HTTPTimeout)
	assert.True(t, c.SpotifyEnabled())
	require.NoError(t, c.Validate())

	p, err := c.Provider()
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		mod  func(*Config)
		want string
	}{
		{"unknown provider", func(c *Config) { c.VisionProvider = "claude" }, "unsupported vision provider"},
		{"openai without key", func(c *Config) { c.VisionProvider = "openai" }, "OPENAI_API_KEY"},
		{"bad host", func(c *Config) { c.GeminiAPIKey = "k"; c.QQMusicHost = "localhost:3001" }, "QQ_MUSIC_API_HOST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Load()
			tt.mod(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}

func TestOverride(t *testing.T) {
	clearEnv(t)
	c := Load().Override("OpenAI", "gpt-4o-mini")
	assert.Equal(t, "openai", c.VisionProvider)
	assert.Equal(t, "gpt-4o-mini", c.Model())
	assert.Equal(t, "gemini-2.5-flash", c.GeminiModel)

	same := Load().Override("", "")
	assert.Equal(t, Load(), same)
}
