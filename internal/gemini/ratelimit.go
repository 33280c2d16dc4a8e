package gemini

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-flow/internal/domain"
)

var (
	reRetryIn    = regexp.MustCompile(`(?i)retry in (\d+(?:\.\d+)?)\s*s`)
	reRetryDelay = regexp.MustCompile(`retryDelay["':\s]*"?(\d+(?:\.\d+)?)s`)
)

// classify turns quota failures into *domain.RateLimitError and leaves other
// errors wrapped as they are.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
			delay := retryDelayFromDetails(apiErr.Details)
			if delay == 0 {
				delay = retryDelayFromMessage(apiErr.Message)
			}
			return &domain.RateLimitError{RetryAfter: delay, Err: err}
		}
		return fmt.Errorf("generate content: %w", err)
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
		return &domain.RateLimitError{RetryAfter: retryDelayFromMessage(errMsg), Err: err}
	}
	return fmt.Errorf("generate content: %w", err)
}

func isRateLimit(err error) bool {
	var rl *domain.RateLimitError
	return errors.As(err, &rl)
}

// retryDelayFromDetails reads google.rpc.RetryInfo.retryDelay ("36s").
func retryDelayFromDetails(details []map[string]any) time.Duration {
	for _, d := range details {
		t, _ := d["@type"].(string)
		if !strings.HasSuffix(t, "google.rpc.RetryInfo") {
			continue
		}
		if raw, ok := d["retryDelay"].(string); ok {
			if dur, err := time.ParseDuration(raw); err == nil && dur > 0 {
				return dur
			}
		}
	}
	return 0
}

func retryDelayFromMessage(msg string) time.Duration {
	for _, re := range []*regexp.Regexp{reRetryIn, reRetryDelay} {
		if m := re.FindStringSubmatch(msg); m != nil {
			secs, err := strconv.ParseFloat(m[1], 64)
			if err == nil && secs > 0 {
				return time.Duration(secs * float64(time.Second))
			}
		}
	}
	return 0
}
