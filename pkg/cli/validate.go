package cli

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
	"github.com/secmon-lab/buildnotice/pkg/usecase"
	"github.com/secmon-lab/buildnotice/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrInvalidNotice is returned when a build notice file fails validation
var ErrInvalidNotice = goerr.New("build notice is invalid")

func cmdValidate() *cli.Command {
	var catalog config.Catalog
	var noticeFile string
	var submit bool

	var flags []cli.Flag
	flags = append(flags, catalog.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "notice-file",
			Aliases:     []string{"f"},
			Usage:       "TOML build notice file",
			Required:    true,
			Destination: &noticeFile,
		},
		&cli.BoolFlag{
			Name:        "submit",
			Usage:       "Print the submitted build notice as JSON when valid",
			Destination: &submit,
		},
	)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a build notice file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			projects, err := catalog.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load project catalog")
			}
			values, err := config.LoadNoticeValues(noticeFile)
			if err != nil {
				return goerr.Wrap(err, "failed to load build notice")
			}

			s := usecase.New(usecase.WithProjectCatalog(projects)).NewSession()
			for _, f := range types.SettableFieldIDs() {
				v, ok := values[f]
				if !ok {
					continue
				}
				if _, err := s.UpdateField(f, v, types.OriginUI); err != nil {
					return goerr.Wrap(err, "failed to apply field", goerr.V(config.FieldIDKey, f))
				}
			}

			p := &printer{w: c.Root().Writer}
			if !submit {
				m := s.ValidateAll()
				p.validation(m)
				if !m.IsValid() {
					return goerr.Wrap(ErrInvalidNotice, "validation failed", goerr.V("failed", len(m.Failed())))
				}
				logger.Info("Build notice is valid", "path", noticeFile)
				return nil
			}

			result := s.SubmitForm()
			if !result.Success {
				p.submit(result)
				return goerr.Wrap(ErrInvalidNotice, "submission rejected", goerr.V("failed", len(result.Errors.Failed())))
			}
			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result.Notice); err != nil {
				return goerr.Wrap(err, "failed to write build notice")
			}
			return nil
		},
	}
}
