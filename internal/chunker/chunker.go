// Package chunker splits transcripts into word-bounded chunks sized for
// the summarization provider.
package chunker

import (
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

// DefaultMaxWords is roughly five minutes of speech.
const DefaultMaxWords = 1500

// Split breaks text on whitespace into chunks of maxWords words. Only the
// final chunk may be shorter. Empty input yields no chunks.
func Split(text string, maxWords int) []domain.TranscriptChunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]domain.TranscriptChunk, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := min(start+maxWords, len(words))
		chunks = append(chunks, domain.TranscriptChunk{
			Index:     len(chunks),
			Text:      strings.Join(words[start:end], " "),
			WordCount: end - start,
		})
	}

	return chunks
}

// Join reassembles chunk texts with single spaces.
func Join(chunks []domain.TranscriptChunk) string {
	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}
