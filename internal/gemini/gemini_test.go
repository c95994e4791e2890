package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lehigh-university-libraries/trackverify/internal/providers"
)

func TestImageFormat(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"image/png", "png"},
		{"image/jpeg", "jpeg"},
		{"", "jpeg"},
		{"application/octet-stream", "jpeg"},
		{"webp", "webp"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, imageFormat(tt.in))
		})
	}
}

func TestExtractTextRequiresKey(t *testing.T) {
	_, err := New("").ExtractText(context.Background(), providers.Config{Prompt: "hi"})
	assert.ErrorContains(t, err, "API key")
}
