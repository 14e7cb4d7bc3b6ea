package translate

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/logging"
)

// completeFunc sends one prompt to a model and returns the reply text.
type completeFunc func(ctx context.Context, prompt string) (string, error)

// LLMTranslator batches items into prompts for a chat model. Batches run
// concurrently and the first failure cancels the rest.
type LLMTranslator struct {
	provider Provider
	model    string
	complete completeFunc
	options  Options
	limiter  *rate.Limiter
	log      *logging.Logger
}

func newLLMTranslator(
	provider Provider,
	model string,
	complete completeFunc,
	opts Options,
) *LLMTranslator {
	t := &LLMTranslator{
		provider: provider,
		model:    model,
		complete: complete,
		options:  opts,
		log:      logging.Nop(),
	}
	if opts.RateLimit > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(float64(opts.RateLimit)/60.0), 1)
	}
	return t
}

// Provider reports which service backs the translator.
func (t *LLMTranslator) Provider() Provider {
	return t.provider
}

// Model reports the model name requests are sent to.
func (t *LLMTranslator) Model() string {
	return t.model
}

// WithLogger sets the logger used for per-batch progress.
func (t *LLMTranslator) WithLogger(log *logging.Logger) *LLMTranslator {
	if log != nil {
		t.log = log
	}
	return t
}

func (t *LLMTranslator) batchSize() int {
	if t.options.BatchSize > 0 {
		return t.options.BatchSize
	}
	return DefaultBatchSize
}

func (t *LLMTranslator) concurrency() int {
	if t.options.Concurrency > 0 {
		return t.options.Concurrency
	}
	return DefaultConcurrency
}

func (t *LLMTranslator) Translate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	batchSize := t.batchSize()
	var batches [][]Item
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}

	batchResults := make([][]Result, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency())
	for i, batch := range batches {
		g.Go(func() error {
			results, err := t.translateBatch(gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			t.log.Debugw("Translated batch",
				"provider", t.provider,
				"batch", i,
				"items", len(batch),
			)
			batchResults[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allResults := make([]Result, 0, len(items))
	for _, r := range batchResults {
		allResults = append(allResults, r...)
	}
	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

func (t *LLMTranslator) translateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	prompt := BuildPrompt(t.options, items)

	responseText, err := t.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text in %s response", t.provider)
	}

	return parseResponse(responseText, items)
}
