package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// TranslateFunc translates one text fragment. It never fails; a degraded
// call returns the input unchanged.
type TranslateFunc func(ctx context.Context, text string) string

// DispatchOptions tunes the fan-out of a dispatch pass.
type DispatchOptions struct {
	// Concurrency bounds the number of in-flight requests.
	Concurrency int
	// Stagger delays consecutive unit starts to avoid burst rate limiting.
	Stagger time.Duration
	// ShowProgress renders a live progress bar on stderr.
	ShowProgress bool
}

const (
	defaultConcurrency = 4
	defaultStagger     = 50 * time.Millisecond
)

// Dispatch translates every collected unit and writes the results back
// into the tree. Units own disjoint targets, so workers never contend on
// the same location; the WaitGroup is the completion barrier over every
// outstanding request.
func Dispatch(ctx context.Context, units []*Unit, translate TranslateFunc, opts DispatchOptions) {
	if len(units) == 0 {
		return
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Stagger < 0 {
		opts.Stagger = defaultStagger
	}

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.NewOptions(len(units),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Translating"),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
	}

	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup

	for i, u := range units {
		if i > 0 && opts.Stagger > 0 {
			time.Sleep(opts.Stagger)
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(u *Unit) {
			defer wg.Done()
			defer func() { <-sem }()
			u.Write(translate(ctx, u.Text))
			if bar != nil {
				bar.Add(1)
			}
		}(u)
	}
	wg.Wait()
}
