package providers

import (
	"context"
	"encoding/base64"
)

// Provider names accepted by VISION_PROVIDER and --provider.
const (
	NameGemini = "gemini"
	NameOpenAI = "openai"
	NameOllama = "ollama"
)

// Image is an inline image sent with the prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Base64 returns the standard base64 encoding of the image bytes.
func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL returns the image as a data: URL.
func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Config represents the configuration for a vision LLM call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Images      []Image
	// JSON asks the provider to reply with a single JSON object when it
	// supports that.
	JSON bool
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
