package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

func TestParseNoticeValues(t *testing.T) {
	t.Run("TOML values are normalized", func(t *testing.T) {
		values, err := config.ParseNoticeValues([]byte(`
npi_number = "NPI-2024-001"
part_number = "ABC-123"
quantity = 100
build_date = 2024-12-01
required_by = "2024-12-25"
priority = "high"
`))
		gt.NoError(t, err).Required()
		gt.Value(t, values[types.FieldQuantity]).Equal(any(100))
		gt.Value(t, values[types.FieldBuildDate]).Equal(any("2024-12-01"))
		gt.Value(t, values[types.FieldRequiredBy]).Equal(any("2024-12-25"))
		gt.Value(t, values[types.FieldPriority]).Equal(any("high"))
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.ParseNoticeValues([]byte(`serial = "SN-1"`))
		gt.Error(t, err).Is(model.ErrUnknownField)
	})

	t.Run("read-only key", func(t *testing.T) {
		_, err := config.ParseNoticeValues([]byte(`id = "BN-1"`))
		gt.Error(t, err).Is(model.ErrReadOnlyField)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := config.ParseNoticeValues([]byte(`quantity = `))
		gt.Error(t, err).Is(config.ErrInvalidNotice)
	})
}

func TestLoadNoticeValues(t *testing.T) {
	path := writeFile(t, "notice.toml", "revision = \"B\"\n")
	values, err := config.LoadNoticeValues(path)
	gt.NoError(t, err).Required()
	gt.Value(t, values[types.FieldRevision]).Equal(any("B"))
}
