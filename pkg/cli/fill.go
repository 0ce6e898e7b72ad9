package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/cli/config"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
	"github.com/secmon-lab/buildnotice/pkg/repository/memory"
	"github.com/secmon-lab/buildnotice/pkg/usecase"
	"github.com/secmon-lab/buildnotice/pkg/utils/errutil"
	"github.com/urfave/cli/v3"
)

func cmdFill() *cli.Command {
	var gemini config.Gemini
	var catalog config.Catalog
	var review bool

	var flags []cli.Flag
	flags = append(flags, gemini.Flags()...)
	flags = append(flags, catalog.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "review",
		Usage:       "Keep extracted fields pending until :apply",
		Sources:     cli.EnvVars("BUILDNOTICE_REVIEW"),
		Destination: &review,
	})

	return &cli.Command{
		Name:    "fill",
		Aliases: []string{"f"},
		Usage:   "Fill a build notice interactively from stdin",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			projects, err := catalog.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load project catalog")
			}
			x, err := newExtractor(ctx, &gemini)
			if err != nil {
				return err
			}

			uc := usecase.New(
				usecase.WithExtractor(x),
				usecase.WithProjectCatalog(projects),
				usecase.WithSessionStore(memory.NewSessionStore[*usecase.Session]()),
			)
			id, err := uc.OpenSession(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = errutil.Handle(ctx, uc.CloseSession(ctx, id), "failed to close session")
			}()

			r := &repl{
				uc:     uc,
				id:     id,
				review: review,
				p:      &printer{w: c.Root().Writer},
			}
			return r.run(ctx, c.Root().Reader)
		},
	}
}

// errQuit stops the read loop without reporting a failure
var errQuit = goerr.New("quit")

type repl struct {
	uc     *usecase.UseCases
	id     model.SessionID
	review bool
	p      *printer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		err := r.uc.WithSession(ctx, r.id, func(s *usecase.Session) error {
			return r.handle(ctx, s, line)
		})
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		case ctx.Err() != nil:
			return goerr.Wrap(ctx.Err(), "interrupted")
		default:
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read input")
	}
	return nil
}

// handle executes one input line. Input mistakes are printed and do not stop the loop.
func (r *repl) handle(ctx context.Context, s *usecase.Session, line string) error {
	if !strings.HasPrefix(line, ":") {
		return r.assist(ctx, s, line)
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "set":
		name, value, _ := strings.Cut(arg, " ")
		field, err := types.ParseFieldID(name)
		if err != nil {
			r.p.errorf("unknown field %q (see :fields)", name)
			return nil
		}
		result, err := s.UpdateField(field, strings.TrimSpace(value), types.OriginUI)
		if err != nil {
			r.p.errorf("%s", err.Error())
			return nil
		}
		if !result.Valid {
			r.p.errorf("%s", result.Message)
		}
		if field == types.FieldProject {
			n := s.Notice()
			r.p.assistant("model " + n.Model + ", customer " + n.Customer)
		}

	case "apply":
		pending := s.Suggestions()
		if len(pending) == 0 {
			r.p.assistant("Nothing to apply")
			return nil
		}
		r.p.validation(s.ApplySuggestions(pending))

	case "validate":
		r.p.validation(s.ValidateAll())

	case "submit":
		r.p.submit(s.SubmitForm())

	case "reset":
		s.ResetForm()
		r.p.assistant("Started build notice " + string(s.Notice().ID))

	case "show":
		r.p.notice(s.Notice())

	case "events":
		r.p.events(s.Events())

	case "fields":
		for _, f := range types.SettableFieldIDs() {
			r.p.assistant(f.String() + " (" + f.Label() + ")")
		}

	case "help":
		r.p.help()

	case "quit", "exit", "q":
		return errQuit

	default:
		r.p.errorf("unknown command :%s (see :help)", cmd)
	}
	return nil
}

func (r *repl) assist(ctx context.Context, s *usecase.Session, text string) error {
	set, err := s.ProcessNaturalLanguage(ctx, text)
	if err != nil {
		return err
	}

	conv := s.Conversation()
	r.p.assistant(conv[len(conv)-1].Text)
	r.p.suggestions(set)

	if r.review || len(set) == 0 {
		return nil
	}
	r.p.validation(s.ApplySuggestions(set))
	return nil
}
