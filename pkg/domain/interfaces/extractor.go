package interfaces

import (
	"context"

	"github.com/secmon-lab/buildnotice/pkg/domain/model"
)

// Extractor turns free text into suggested field values. A non-match is not an
// error; errors are reserved for cancellation and unusable backends.
type Extractor interface {
	Extract(ctx context.Context, text string) (model.SuggestionSet, error)
}
