package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// LoadNoticeValues reads a TOML build notice whose top-level keys are field
// IDs. TOML dates are converted to YYYY-MM-DD text and integers to int.
// Undeclared and read-only keys are rejected.
func LoadNoticeValues(path string) (map[types.FieldID]any, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read notice file", goerr.V(ConfigPathKey, path))
	}
	return ParseNoticeValues(data)
}

// ParseNoticeValues decodes TOML build notice content
func ParseNoticeValues(data []byte) (map[types.FieldID]any, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(ErrInvalidNotice, "failed to parse TOML notice", goerr.V("cause", err.Error()))
	}

	values := make(map[types.FieldID]any, len(raw))
	for key, v := range raw {
		field := types.FieldID(key)
		if !field.IsValid() {
			return nil, goerr.Wrap(model.ErrUnknownField, "unknown field in notice", goerr.V(FieldIDKey, key))
		}
		if field.IsReadOnly() {
			return nil, goerr.Wrap(model.ErrReadOnlyField, "read-only field in notice", goerr.V(FieldIDKey, key))
		}
		values[field] = normalizeTOML(v)
	}
	return values, nil
}

func normalizeTOML(v any) any {
	switch x := v.(type) {
	case toml.LocalDate:
		return x.String()
	case toml.LocalDateTime:
		return x.LocalDate.String()
	case time.Time:
		return x.Format(model.DateLayout)
	case int64:
		return model.CoerceQuantity(x)
	default:
		return v
	}
}
