package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/usecase"
	"github.com/secmon-lab/buildnotice/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

type extractOutput struct {
	Input       string              `json:"input"`
	Suggestions model.SuggestionSet `json:"suggestions"`
}

func cmdExtract() *cli.Command {
	var gemini config.Gemini
	var inputFile string
	var concurrency int

	var flags []cli.Flag
	flags = append(flags, gemini.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "input-file",
			Aliases:     []string{"i"},
			Usage:       "Read one message per line from file (\"-\" for stdin)",
			Destination: &inputFile,
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Aliases:     []string{"n"},
			Usage:       "Maximum concurrent extractions",
			Value:       usecase.DefaultExtractParallel,
			Sources:     cli.EnvVars("BUILDNOTICE_CONCURRENCY"),
			Destination: &concurrency,
		},
	)

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract build notice fields from free text",
		ArgsUsage: "[text...]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			texts := c.Args().Slice()
			if inputFile != "" {
				lines, err := readInputLines(ctx, inputFile, c.Root().Reader)
				if err != nil {
					return err
				}
				texts = append(texts, lines...)
			}
			if len(texts) == 0 {
				return goerr.New("no input text given")
			}

			x, err := newExtractor(ctx, &gemini)
			if err != nil {
				return err
			}

			uc := usecase.New(usecase.WithExtractor(x))
			results, err := uc.ExtractBatch(ctx, texts, concurrency)
			if err != nil {
				return goerr.Wrap(err, "extraction failed")
			}

			enc := json.NewEncoder(c.Root().Writer)
			for i, set := range results {
				if err := enc.Encode(extractOutput{Input: texts[i], Suggestions: set}); err != nil {
					return goerr.Wrap(err, "failed to write result")
				}
			}
			return nil
		},
	}
}

func readInputLines(ctx context.Context, path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input file", goerr.V(config.ConfigPathKey, path))
		}
		defer safe.Close(ctx, f)
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read input", goerr.V(config.ConfigPathKey, path))
	}
	return lines, nil
}
