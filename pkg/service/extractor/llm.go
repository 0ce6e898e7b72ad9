package extractor

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
	"github.com/secmon-lab/buildnotice/pkg/utils/logging"
)

//go:embed prompt/extract_system.md
var extractSystemPromptTmpl string

var extractSystemPrompt = template.Must(template.New("extract_system").Parse(extractSystemPromptTmpl))

// LLM extracts fields with a language model. Pattern results fill in fields
// the model did not return, and stand in entirely when the model fails.
type LLM struct {
	llmClient gollem.LLMClient
	fallback  interfaces.Extractor
	now       func() time.Time
}

var _ interfaces.Extractor = &LLM{}

// Option is a functional option for LLM configuration
type Option func(*LLM)

// WithFallback replaces the pattern extractor used to complement model output
func WithFallback(fallback interfaces.Extractor) Option {
	return func(x *LLM) {
		x.fallback = fallback
	}
}

// WithClock sets the clock used to resolve relative dates
func WithClock(now func() time.Time) Option {
	return func(x *LLM) {
		x.now = now
	}
}

// NewLLM creates a new LLM extractor with the provided client
func NewLLM(llmClient gollem.LLMClient, opts ...Option) (*LLM, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	x := &LLM{
		llmClient: llmClient,
		fallback:  Pattern{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

// Extract implements interfaces.Extractor. Only cancellation of ctx is
// reported as an error.
func (x *LLM) Extract(ctx context.Context, text string) (model.SuggestionSet, error) {
	base, err := x.fallback.Extract(ctx, text)
	if err != nil {
		return nil, goerr.Wrap(err, "fallback extraction failed")
	}

	fromLLM, err := x.generate(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, goerr.Wrap(ctxErr, "extraction cancelled")
		}
		logging.From(ctx).Warn("LLM extraction failed, using pattern result",
			"error", err.Error(),
			"pattern_fields", len(base),
		)
		return base, nil
	}

	for f, v := range fromLLM {
		base[f] = v
	}
	return base, nil
}

func (x *LLM) generate(ctx context.Context, text string) (model.SuggestionSet, error) {
	systemPrompt, err := x.buildSystemPrompt()
	if err != nil {
		return nil, err
	}

	session, err := x.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(text))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return nil, goerr.New("empty LLM response")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(resp.Texts[0]), &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	return normalize(raw), nil
}

type promptField struct {
	ID      string
	Kind    string
	Label   string
	Options string
}

func (x *LLM) buildSystemPrompt() (string, error) {
	var fields []promptField
	for _, f := range types.SettableFieldIDs() {
		fields = append(fields, promptField{
			ID:      f.String(),
			Kind:    string(f.Kind()),
			Label:   f.Label(),
			Options: strings.Join(optionsOf(f), ", "),
		})
	}

	var buf bytes.Buffer
	if err := extractSystemPrompt.Execute(&buf, struct {
		Today  string
		Fields []promptField
	}{
		Today:  x.now().Format(model.DateLayout),
		Fields: fields,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to render system prompt")
	}
	return buf.String(), nil
}

func optionsOf(f types.FieldID) []string {
	var out []string
	switch f {
	case types.FieldPriority:
		for _, p := range types.AllPriorities() {
			out = append(out, p.String())
		}
	case types.FieldStatus:
		for _, s := range types.AllStatuses() {
			out = append(out, s.String())
		}
	case types.FieldStage:
		for _, s := range types.AllStages() {
			out = append(out, s.String())
		}
	}
	return out
}

func buildResponseSchema() *gollem.Parameter {
	props := make(map[string]*gollem.Parameter)
	for _, f := range types.SettableFieldIDs() {
		p := &gollem.Parameter{
			Type:        gollem.TypeString,
			Description: f.Label(),
		}
		switch f.Kind() {
		case types.FieldKindNumber:
			p.Type = gollem.TypeInteger
		case types.FieldKindDate:
			p.Description = f.Label() + " (YYYY-MM-DD)"
		case types.FieldKindSelect:
			p.Description = f.Label() + " (one of: " + strings.Join(optionsOf(f), ", ") + ")"
		}
		props[f.String()] = p
	}

	return &gollem.Parameter{
		Title:       "BuildNoticeFields",
		Description: "Build notice fields stated in the message",
		Type:        gollem.TypeObject,
		Properties:  props,
	}
}

// normalize keeps only settable fields whose values fit the field's shape
func normalize(raw map[string]any) model.SuggestionSet {
	out := make(model.SuggestionSet)
	for key, value := range raw {
		f, err := types.ParseFieldID(key)
		if err != nil || f.IsReadOnly() || value == nil {
			continue
		}

		switch f.Kind() {
		case types.FieldKindNumber:
			if n := model.CoerceQuantity(value); n > 0 {
				out[f] = n
			}
		case types.FieldKindDate:
			if d := model.CoerceDate(value); d != nil {
				out[f] = model.FormatDate(d)
			}
		case types.FieldKindSelect:
			if v, ok := normalizeOption(f, model.CoerceText(value)); ok {
				out[f] = v
			}
		default:
			s := strings.TrimSpace(model.CoerceText(value))
			if s == "" {
				continue
			}
			if isCode(f) {
				s = strings.ToUpper(s)
			}
			out[f] = s
		}
	}
	return out
}

func isCode(f types.FieldID) bool {
	return f == types.FieldNPINumber || f == types.FieldPartNumber || f == types.FieldRevision
}

func normalizeOption(f types.FieldID, s string) (string, bool) {
	switch f {
	case types.FieldPriority:
		p, err := types.ParsePriority(s)
		return p.String(), err == nil
	case types.FieldStatus:
		st, err := types.ParseStatus(s)
		return st.String(), err == nil
	case types.FieldStage:
		st, err := types.ParseStage(s)
		return st.String(), err == nil
	}
	return "", false
}
