package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
)

func TestGemini_Configure(t *testing.T) {
	t.Run("returns nil client when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(t.Context())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("enabled only with a project", func(t *testing.T) {
		gt.Bool(t, config.NewGeminiForTest("", "us-central1").Enabled()).False()
		gt.Bool(t, config.NewGeminiForTest("my-project", "").Enabled()).True()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}

func TestSentry_Configure(t *testing.T) {
	t.Run("disabled without DSN", func(t *testing.T) {
		closer, err := config.NewSentryForTest("", "test").Configure("dev")
		gt.NoError(t, err).Required()
		gt.Value(t, closer).NotNil()
		closer()
	})

	t.Run("rejects malformed DSN", func(t *testing.T) {
		_, err := config.NewSentryForTest("not a dsn", "test").Configure("dev")
		gt.Value(t, err).NotNil()
	})
}
