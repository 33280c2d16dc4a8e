package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

func TestClassifyAPIErrorWithRetryInfo(t *testing.T) {
	apiErr := genai.APIError{
		Code:    429,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "You exceeded your current quota.",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "36s"},
		},
	}

	err := classify(fmt.Errorf("wrapped: %w", apiErr))

	var rl *domain.RateLimitError
	require.True(t, errors.As(err, &rl))
	assert.Equal(t, 36*time.Second, rl.RetryAfter)
}

func TestClassifyAPIErrorMessageDelay(t *testing.T) {
	apiErr := genai.APIError{Code: 429, Message: "Quota exceeded. Please retry in 12.5s."}

	var rl *domain.RateLimitError
	require.True(t, errors.As(classify(apiErr), &rl))
	assert.Equal(t, 12500*time.Millisecond, rl.RetryAfter)
}

func TestClassifyPlainErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		rateLimit bool
		delay     time.Duration
	}{
		{"quota string", errors.New("googleapi: Error 429: quota exceeded"), true, 0},
		{"resource exhausted with delay", errors.New(`RESOURCE_EXHAUSTED retryDelay:"7s"`), true, 7 * time.Second},
		{"server error", errors.New("500 internal"), false, 0},
		{"api error non quota", genai.APIError{Code: 400, Message: "bad audio"}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.err)
			var rl *domain.RateLimitError
			assert.Equal(t, tt.rateLimit, errors.As(err, &rl))
			if tt.rateLimit {
				assert.Equal(t, tt.delay, rl.RetryAfter)
			}
			if _, isAPI := tt.err.(genai.APIError); !isAPI {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c, err := New(context.Background(), nil, "gemini-2.5-flash", logger.Nop())
	require.NoError(t, err)
	assert.False(t, c.Configured())

	_, err = c.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "first "}, {Text: "second"}}},
		}},
	}
	assert.Equal(t, "first second", responseText(resp))
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
}

type fakeModels struct {
	calls int
	err   error
	text  string
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
	}}}, nil
}

func TestCallRotatesToFreshKey(t *testing.T) {
	quota := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"}
	first := &fakeModels{err: quota}
	second := &fakeModels{text: "summary"}
	c := &implClient{clients: []contentGenerator{first, second}, model: "m", logger: logger.Nop()}

	got, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "summary", got)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, c.currentKey)
}

func TestCallAllKeysRateLimited(t *testing.T) {
	quota := genai.APIError{Code: 429, Message: "Please retry in 3s."}
	first, second := &fakeModels{err: quota}, &fakeModels{err: quota}
	c := &implClient{clients: []contentGenerator{first, second}, model: "m", logger: logger.Nop()}

	_, err := c.Generate(context.Background(), "prompt")
	var rl *domain.RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestCallStopsOnOtherErrors(t *testing.T) {
	first := &fakeModels{err: genai.APIError{Code: 400, Message: "bad audio"}}
	second := &fakeModels{text: "unused"}
	c := &implClient{clients: []contentGenerator{first, second}, model: "m", logger: logger.Nop()}

	_, err := c.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 0, second.calls)
}
