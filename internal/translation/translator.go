// Package translation turns single text fragments into their translated
// form through an LLM provider, with a bounded exponential-backoff retry
// policy and a run-scoped cache. Translate never fails: every error path
// degrades to the original text.
package translation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"codeberg.org/snonux/mdtrans/internal/glossary"
	"codeberg.org/snonux/mdtrans/internal/language"
)

// Options tunes the retry policy. Zero values pick the defaults.
type Options struct {
	MaxAttempts    int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

const (
	defaultMaxAttempts    = 4
	defaultBaseDelay      = time.Second
	defaultMaxDelay       = 30 * time.Second
	defaultRequestTimeout = 60 * time.Second
)

// Translator wraps a Provider with caching and retries for one target
// language.
type Translator struct {
	provider Provider
	cache    *Cache
	lang     language.Language
	system   string
	opts     Options

	// sleep is swappable so tests can observe the backoff schedule.
	sleep func(time.Duration)
}

// New creates a Translator. The cache is shared across all units of a run;
// pass a fresh one per invocation.
func New(provider Provider, cache *Cache, lang language.Language, gloss *glossary.Glossary, opts Options) *Translator {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = defaultBaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	return &Translator{
		provider: provider,
		cache:    cache,
		lang:     lang,
		system:   buildSystemPrompt(lang, gloss),
		opts:     opts,
		sleep:    time.Sleep,
	}
}

// Translate returns the translation of text, or text itself when every
// recovery path is exhausted. It never returns an error.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if cached, ok := t.cache.Get(t.lang.Code, text); ok {
		return cached
	}

	for attempt := 0; attempt < t.opts.MaxAttempts; attempt++ {
		rctx, cancel := context.WithTimeout(ctx, t.opts.RequestTimeout)
		reply, err := t.provider.Complete(rctx, t.system, text)
		cancel()

		if err == nil {
			reply = stripQuotes(strings.TrimSpace(reply))
			if strings.TrimSpace(reply) == "" {
				t.warn(text, fmt.Errorf("empty reply"))
				return text
			}
			t.cache.Put(t.lang.Code, text, reply)
			return reply
		}

		switch classify(err) {
		case classRetryable:
			if attempt == t.opts.MaxAttempts-1 {
				t.warn(text, err)
				return text
			}
			t.sleep(backoffDelay(attempt, t.opts.BaseDelay, t.opts.MaxDelay))
		default:
			// Fatal and unknown errors both fail open.
			t.warn(text, err)
			return text
		}
	}
	return text
}

func (t *Translator) warn(text string, err error) {
	fmt.Fprintf(os.Stderr, "Warning: keeping original text %q: %v\n", truncate(text, 48), err)
}

// backoffDelay returns min(base<<attempt + jitter, max). The jitter stays
// below half the undecorated delay, which keeps the schedule monotonically
// non-decreasing across attempts.
func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	d := base << uint(attempt)
	if d > max || d <= 0 {
		d = max
	}
	d += time.Duration(rand.Int64N(int64(d)/2 + 1))
	if d > max {
		d = max
	}
	return d
}

// quotePairs are the wrapping characters stripped one layer deep from a
// model reply.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"}, // curly double
	{"‘", "’"}, // curly single
	{"「", "」"}, // corner brackets
	{"『", "』"}, // white corner brackets
}

// stripQuotes removes one layer of surrounding quote characters.
func stripQuotes(s string) string {
	for _, p := range quotePairs {
		if len(s) > len(p[0])+len(p[1]) &&
			strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return s[len(p[0]) : len(s)-len(p[1])]
		}
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
