package translation

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Provider is one text-completion backend. Complete sends a single
// instruction/text pair and returns the model's reply.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// RetryableError marks a provider failure worth retrying (rate limit,
// server overload, server error).
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return e.Message
}

// FatalError marks a provider failure that will not succeed on retry
// (bad request, auth, not found).
type FatalError struct {
	StatusCode int
	Message    string
}

func (e *FatalError) Error() string {
	return e.Message
}

type errClass int

const (
	classUnknown errClass = iota
	classRetryable
	classFatal
)

// classify maps a provider error onto the retry taxonomy. Unknown error
// shapes fail open: the caller gives up immediately and keeps the
// original text.
func classify(err error) errClass {
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return classRetryable
	}
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return classFatal
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return classifyStatus(genaiErr.Code)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return classRetryable
	}
	return classUnknown
}

func classifyStatus(code int) errClass {
	switch {
	case code == 429 || code >= 500:
		return classRetryable
	case code == 400 || code == 401 || code == 403 || code == 404:
		return classFatal
	default:
		return classUnknown
	}
}
