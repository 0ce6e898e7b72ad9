package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
)

const defaultGeminiLocation = "us-central1"

// Gemini selects the Vertex AI project backing the LLM extractor. Leaving the
// project empty keeps extraction on the regex probes.
type Gemini struct {
	projectID string
	location  string
}

// Flags returns the --gemini-* flags
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Vertex AI project for LLM extraction (regex extraction when empty)",
			Sources:     cli.EnvVars("BUILDNOTICE_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI region",
			Value:       defaultGeminiLocation,
			Sources:     cli.EnvVars("BUILDNOTICE_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// Enabled reports whether a project is set
func (g *Gemini) Enabled() bool {
	return g.projectID != ""
}

// LogValue implements slog.LogValuer
func (g Gemini) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", g.Enabled()),
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	)
}

// Configure builds the gollem client, or returns nil when Gemini is not enabled
func (g *Gemini) Configure(ctx context.Context) (gollem.LLMClient, error) {
	if !g.Enabled() {
		return nil, nil
	}

	location := g.location
	if location == "" {
		location = defaultGeminiLocation
	}

	client, err := gemini.New(ctx, g.projectID, location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Gemini client",
			goerr.V("project_id", g.projectID),
			goerr.V("location", location))
	}
	return client, nil
}
