package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultExtractParallel bounds concurrent extractor calls in ExtractBatch
const DefaultExtractParallel = 4

// Extract runs the configured extractor over a single text without touching any session
func (uc *UseCases) Extract(ctx context.Context, text string) (model.SuggestionSet, error) {
	set, err := uc.extractor.Extract(ctx, text)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract fields")
	}
	return set.Sanitize(), nil
}

// ExtractBatch extracts every text with at most parallel concurrent calls.
// Results keep input order. The first failure cancels the rest.
func (uc *UseCases) ExtractBatch(ctx context.Context, texts []string, parallel int) ([]model.SuggestionSet, error) {
	if parallel <= 0 {
		return nil, goerr.Wrap(ErrInvalidRequest, "parallel must be positive", goerr.V(ParallelKey, parallel))
	}

	results := make([]model.SuggestionSet, len(texts))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)

	for i, text := range texts {
		eg.Go(func() error {
			set, err := uc.Extract(ctx, text)
			if err != nil {
				return goerr.Wrap(err, "batch extraction failed", goerr.V(InputIndex, i))
			}
			results[i] = set
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("batch extracted", "count", len(texts), "parallel", parallel)
	return results, nil
}
