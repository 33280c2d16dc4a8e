package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-flow/internal/gemini"
)

const transcribePrompt = `Transcribe this lecture recording verbatim in its original language%s.
Return only the spoken text as plain paragraphs. Do not summarize, translate, or add timestamps, speaker labels, or commentary.`

type geminiProvider struct {
	client   gemini.Client
	maxBytes int64
}

// NewGemini creates a provider that sends segments inline to Gemini.
// Segments larger than maxBytes are rejected so the chain moves on.
func NewGemini(client gemini.Client, maxBytes int64) Provider {
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	return &geminiProvider{client: client, maxBytes: maxBytes}
}

func (g *geminiProvider) Name() string { return "gemini" }

func (g *geminiProvider) Available() bool { return g.client != nil && g.client.Configured() }

func (g *geminiProvider) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (string, error) {
	if int64(len(audio)) > g.maxBytes {
		return "", fmt.Errorf("segment of %d bytes exceeds the inline limit of %d", len(audio), g.maxBytes)
	}
	hint := ""
	if language != "" {
		hint = fmt.Sprintf(" (expected language code: %s)", language)
	}
	return g.client.GenerateWithAudio(ctx, fmt.Sprintf(transcribePrompt, hint), audio, mimeType)
}
