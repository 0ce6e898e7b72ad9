package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/service/extractor"
	"github.com/secmon-lab/buildnotice/pkg/utils/logging"
)

// newExtractor returns the LLM extractor when Gemini is configured and the
// pattern extractor otherwise
func newExtractor(ctx context.Context, gemini *config.Gemini) (interfaces.Extractor, error) {
	if !gemini.Enabled() {
		logging.From(ctx).Debug("Using pattern extractor")
		return extractor.Pattern{}, nil
	}

	client, err := gemini.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	x, err := extractor.NewLLM(client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM extractor")
	}
	logging.From(ctx).Debug("Using LLM extractor", "gemini", *gemini)
	return x, nil
}
