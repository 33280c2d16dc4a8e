package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/chunker"
	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/gemini"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

type fakeClient struct {
	mu      sync.Mutex
	prompts []string
	times   []time.Time
	respond func(call int, prompt string) (string, error)
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.times = append(f.times, time.Now())
	call := len(f.prompts)
	f.mu.Unlock()

	if f.respond == nil {
		return "summary of call", nil
	}
	return f.respond(call, prompt)
}

func (f *fakeClient) GenerateWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	return f.Generate(ctx, prompt+"\n[audio "+mimeType+"]")
}

func (f *fakeClient) Configured() bool { return true }

func newTestSummarizer(client gemini.Client, opts Options) Summarizer {
	return New(client, opts, logger.Nop())
}

func TestSummarizeAllOptionCombinations(t *testing.T) {
	chunks := chunker.Split("the lecturer explains binary search trees and their balancing", 1500)

	for _, style := range domain.Styles {
		for _, lang := range domain.Languages {
			for _, out := range domain.OutputTypes {
				opts := domain.SummaryOptions{Style: style, Language: lang, OutputType: out}
				client := &fakeClient{}

				got, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunks, opts)
				if err != nil {
					assert.ErrorIs(t, err, domain.ErrProvider)
					continue
				}
				assert.NotEmpty(t, got, "%s/%s/%s", style, lang, out)

				if out == domain.OutputTranscript {
					assert.Empty(t, client.prompts)
					continue
				}
				require.Len(t, client.prompts, 1)
				assert.Contains(t, client.prompts[0], styleInstructions[style])
				assert.Contains(t, client.prompts[0], languageDirectives[lang])
			}
		}
	}
}

func TestSummarizeTranscriptOutputUnchanged(t *testing.T) {
	text := "raw words stay exactly as spoken"
	client := &fakeClient{}
	opts := domain.SummaryOptions{Style: domain.StyleTLDR, Language: domain.LangEnglish, OutputType: domain.OutputTranscript}

	got, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunker.Split(text, 2), opts)
	require.NoError(t, err)
	assert.Equal(t, text, got)
	assert.Empty(t, client.prompts)
}

func TestSummarizeSingleChunkSingleCall(t *testing.T) {
	client := &fakeClient{respond: func(int, string) (string, error) { return "  One sentence about sorting.  ", nil }}
	opts := domain.SummaryOptions{Style: domain.StyleTLDR, Language: domain.LangEnglish, OutputType: domain.OutputSummary}

	got, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunker.Split("short lecture on sorting", 1500), opts)
	require.NoError(t, err)
	assert.Equal(t, "One sentence about sorting.", got)
	assert.Len(t, client.prompts, 1)
}

func TestSummarizeMapReduce(t *testing.T) {
	client := &fakeClient{respond: func(call int, prompt string) (string, error) {
		if strings.Contains(prompt, "Partial summaries") {
			return "final merged", nil
		}
		return "partial", nil
	}}
	chunks := chunker.Split(strings.Repeat("word ", 25), 10)
	require.Len(t, chunks, 3)

	got, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunks, domain.DefaultSummaryOptions())
	require.NoError(t, err)
	assert.Equal(t, "final merged", got)
	require.Len(t, client.prompts, 4)
	assert.Contains(t, client.prompts[0], "part 1 of 3")
	assert.Contains(t, client.prompts[2], "part 3 of 3")
	assert.Equal(t, 3, strings.Count(client.prompts[3], "partial"))
}

func TestSummarizeRetriesOnceAfterProviderDelay(t *testing.T) {
	delay := 40 * time.Millisecond
	client := &fakeClient{respond: func(call int, prompt string) (string, error) {
		if call == 1 {
			return "", &domain.RateLimitError{RetryAfter: delay, Err: errors.New("429")}
		}
		return "ok", nil
	}}

	got, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunker.Split("a b c", 10), domain.DefaultSummaryOptions())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	require.Len(t, client.times, 2)
	assert.Equal(t, client.prompts[0], client.prompts[1])
	assert.GreaterOrEqual(t, client.times[1].Sub(client.times[0]), delay)
}

func TestSummarizeRateLimitCap(t *testing.T) {
	client := &fakeClient{respond: func(int, string) (string, error) {
		return "", &domain.RateLimitError{RetryAfter: time.Millisecond, Err: errors.New("429")}
	}}

	_, err := newTestSummarizer(client, Options{MaxRetries: 2}).Summarize(context.Background(), chunker.Split("a b", 10), domain.DefaultSummaryOptions())
	require.Error(t, err)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindProvider, de.Kind)
	assert.Equal(t, domain.ReasonRateLimited, de.Reason)
	assert.Len(t, client.prompts, 3)
}

func TestSummarizeRetryWaitBudget(t *testing.T) {
	client := &fakeClient{respond: func(int, string) (string, error) {
		return "", &domain.RateLimitError{Err: errors.New("429")}
	}}
	opts := Options{DefaultRetryAfter: time.Hour, MaxRetryWait: time.Minute}

	start := time.Now()
	_, err := newTestSummarizer(client, opts).Summarize(context.Background(), chunker.Split("a", 10), domain.DefaultSummaryOptions())
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, client.prompts, 1)
}

func TestSummarizeProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		resp func(int, string) (string, error)
	}{
		{"hard failure", func(int, string) (string, error) { return "", errors.New("500 internal") }},
		{"empty output", func(int, string) (string, error) { return "   ", nil }},
		{"not configured", func(int, string) (string, error) { return "", gemini.ErrNotConfigured }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{respond: tt.resp}
			_, err := newTestSummarizer(client, Options{}).Summarize(context.Background(), chunker.Split("a b", 10), domain.DefaultSummaryOptions())
			assert.ErrorIs(t, err, domain.ErrProvider)
			assert.Len(t, client.prompts, 1)
		})
	}
}

func TestSummarizeEmptyChunks(t *testing.T) {
	_, err := newTestSummarizer(&fakeClient{}, Options{}).Summarize(context.Background(), nil, domain.DefaultSummaryOptions())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummarizeAudio(t *testing.T) {
	client := &fakeClient{}
	opts := domain.SummaryOptions{Style: domain.StyleQA, Language: domain.LangFrench, OutputType: domain.OutputSummary}

	got, err := newTestSummarizer(client, Options{}).SummarizeAudio(context.Background(), []byte("RIFF"), "audio/wav", opts)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "[audio audio/wav]")
	assert.Contains(t, client.prompts[0], languageDirectives[domain.LangFrench])

	_, err = newTestSummarizer(client, Options{}).SummarizeAudio(context.Background(), nil, "audio/wav", opts)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPromptsCoverEveryOption(t *testing.T) {
	for _, s := range domain.Styles {
		assert.NotEmpty(t, styleInstructions[s], s)
	}
	for _, l := range domain.Languages {
		assert.NotEmpty(t, languageDirectives[l], l)
	}
}
