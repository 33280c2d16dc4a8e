package gemini

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// contentGenerator is the part of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type implClient struct {
	clients    []contentGenerator
	currentKey int
	model      string
	logger     logger.Logger
	mu         sync.Mutex
}

// New creates one genai client per API key. With no keys the returned
// Client reports Configured() == false and every call fails with ErrNotConfigured.
func New(ctx context.Context, apiKeys []string, model string, log logger.Logger) (Client, error) {
	c := &implClient{
		model:  model,
		logger: log,
	}
	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client %d: %w", i+1, err)
		}
		c.clients = append(c.clients, client.Models)
	}
	return c, nil
}
