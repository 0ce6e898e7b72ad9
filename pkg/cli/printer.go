package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

var (
	colorOK     = color.New(color.FgGreen)
	colorNG     = color.New(color.FgRed)
	colorField  = color.New(color.FgCyan)
	colorAI     = color.New(color.FgMagenta)
	colorNotice = color.New(color.Bold)
)

type printer struct {
	w io.Writer
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.Format(model.DateLayout)
	case *time.Time:
		return model.FormatDate(x)
	default:
		return fmt.Sprint(x)
	}
}

func (p *printer) suggestions(set model.SuggestionSet) {
	fields := set.Fields()
	if len(fields) == 0 {
		colorAI.Fprintln(p.w, "No fields found")
		return
	}
	for _, f := range fields {
		colorField.Fprintf(p.w, "  %s", f)
		fmt.Fprintf(p.w, " = %s\n", formatValue(set[f]))
	}
}

func (p *printer) validation(m model.ValidationMap) {
	failed := m.Failed()
	for _, f := range failed {
		colorNG.Fprintf(p.w, "  ✗ %s: %s\n", f, m[f].Message)
	}
	if len(failed) == 0 {
		colorOK.Fprintf(p.w, "  ✓ all %d checked fields are valid\n", len(m))
	}
}

func (p *printer) notice(n *model.BuildNotice) {
	colorNotice.Fprintf(p.w, "Build notice %s\n", n.ID)
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, f := range types.AllFieldIDs() {
		if f == types.FieldIdentifier {
			continue
		}
		v, err := n.Get(f)
		if err != nil {
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\n", f.Label(), formatValue(v))
	}
	_ = tw.Flush()
}

func (p *printer) events(events []model.Event) {
	for i, e := range events {
		field := ""
		if e.Field != nil {
			field = " " + e.Field.String()
		}
		fmt.Fprintf(p.w, "  %3d %s [%s] %s%s\n",
			i+1, e.Timestamp.Format(time.TimeOnly), e.Origin, e.Kind, field)
	}
}

func (p *printer) submit(result model.SubmitResult) {
	if !result.Success {
		colorNG.Fprintln(p.w, "Submission rejected")
		p.validation(result.Errors)
		return
	}
	colorOK.Fprintf(p.w, "Submitted %s (status %s)\n", result.Notice.ID, result.Notice.Status)
}

func (p *printer) assistant(text string) {
	colorAI.Fprintf(p.w, "assistant> %s\n", text)
}

func (p *printer) errorf(format string, args ...any) {
	colorNG.Fprintf(p.w, "error: "+format+"\n", args...)
}

func (p *printer) help() {
	fmt.Fprintln(p.w, strings.TrimSpace(`
Type a sentence to extract fields, or a command:
  :set <field> <value>  set one field
  :apply                apply pending suggestions
  :validate             validate required fields
  :submit               validate and submit
  :reset                start a new build notice
  :show                 print the build notice
  :events               print the event log
  :fields               list field IDs
  :quit                 exit`))
}
