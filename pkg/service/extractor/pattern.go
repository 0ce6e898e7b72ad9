package extractor

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/interfaces"
	"github.com/secmon-lab/buildnotice/pkg/domain/model"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// probe inspects the input and yields at most one field value
type probe struct {
	field types.FieldID
	match func(text, lower string) (any, bool)
}

var (
	npiPattern      = regexp.MustCompile(`(?i)npi[:\s#-]*([A-Z0-9]{3,}-[0-9]{4}-[0-9]{3}|[A-Z0-9-]{5,})`)
	partPattern     = regexp.MustCompile(`(?i)part(?:\s+number)?[:\s#-]*([A-Z]{2,}[0-9-]{2,})`)
	revisionPattern = regexp.MustCompile(`(?i)\brev(?:ision)?\b[:\s]*([a-z0-9.]+)`)
	quantityPattern = regexp.MustCompile(`(?i)\b(?:quantity|qty|build)[:\s]*(\d+)`)
	datePattern     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:assembly\s+location|location|site|facility|assembl(?:y|ed)\s+at)\b[:\s]*([^,;\n]+)`)
	locationStop    = regexp.MustCompile(`(?i)\s+(?:need\s+by|required\s+by|by|build|qty|quantity|priority|project|stage|rev(?:ision)?|part|npi|urgent|asap|and|for)\b`)
	projectPattern  = regexp.MustCompile(`(?i)\bproject\b(?:\s+name)?[:\s]+([^,;\n]+)`)
	projectStop     = regexp.MustCompile(`(?i)\s+(?:for|stage)\b`)
	wordPattern     = regexp.MustCompile(`[A-Za-z0-9]+`)
)

// probes run in this order; each is independent of the others
var probes = []probe{
	{field: types.FieldNPINumber, match: matchNPI},
	{field: types.FieldPartNumber, match: matchPart},
	{field: types.FieldRevision, match: matchRevision},
	{field: types.FieldQuantity, match: matchQuantity},
	{field: types.FieldPriority, match: matchPriority},
	{field: types.FieldRequiredBy, match: matchDate(types.FieldRequiredBy)},
	{field: types.FieldBuildDate, match: matchDate(types.FieldBuildDate)},
	{field: types.FieldAssemblyLoc, match: matchLocation},
	{field: types.FieldProject, match: matchProject},
	{field: types.FieldStage, match: matchStage},
}

// Extract returns the field values found in text. It never fails; fields
// that no probe recognizes are simply absent.
func Extract(text string) model.SuggestionSet {
	result := make(model.SuggestionSet)
	lower := strings.ToLower(text)

	for _, p := range probes {
		if _, done := result[p.field]; done {
			continue
		}
		if v, ok := p.match(text, lower); ok {
			result[p.field] = v
		}
	}
	return result
}

// Pattern is the regular-expression extractor
type Pattern struct{}

var _ interfaces.Extractor = Pattern{}

// Extract implements interfaces.Extractor
func (Pattern) Extract(ctx context.Context, text string) (model.SuggestionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "extraction cancelled")
	}
	return Extract(text), nil
}

func submatch(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchNPI(text, _ string) (any, bool) {
	v, ok := submatch(npiPattern, text)
	if !ok {
		return nil, false
	}
	return strings.ToUpper(strings.TrimSpace(v)), true
}

func matchPart(text, _ string) (any, bool) {
	v, ok := submatch(partPattern, text)
	if !ok {
		return nil, false
	}
	return strings.ToUpper(strings.TrimSpace(v)), true
}

func matchRevision(text, _ string) (any, bool) {
	v, ok := submatch(revisionPattern, text)
	if !ok {
		return nil, false
	}
	return strings.ToUpper(strings.TrimSpace(v)), true
}

func matchQuantity(text, _ string) (any, bool) {
	v, ok := submatch(quantityPattern, text)
	if !ok {
		return nil, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, false
	}
	return n, true
}

func matchPriority(_, lower string) (any, bool) {
	switch {
	case strings.Contains(lower, "urgent"), strings.Contains(lower, "asap"):
		return types.PriorityUrgent.String(), true
	case strings.Contains(lower, "high priority"):
		return types.PriorityHigh.String(), true
	case strings.Contains(lower, "low priority"):
		return types.PriorityLow.String(), true
	default:
		return nil, false
	}
}

// dateTarget decides which date field a date literal belongs to. A
// "required by" keyword wins over "build date"; with neither, no field.
func dateTarget(lower string) (types.FieldID, bool) {
	switch {
	case strings.Contains(lower, "required by"), strings.Contains(lower, "need by"):
		return types.FieldRequiredBy, true
	case strings.Contains(lower, "build date"):
		return types.FieldBuildDate, true
	default:
		return "", false
	}
}

// firstDate returns the first literal that is a real calendar date
func firstDate(text string) (string, bool) {
	for _, m := range datePattern.FindAllStringSubmatch(text, -1) {
		if _, err := time.Parse(model.DateLayout, m[1]); err == nil {
			return m[1], true
		}
	}
	return "", false
}

func matchDate(field types.FieldID) func(text, lower string) (any, bool) {
	return func(text, lower string) (any, bool) {
		target, ok := dateTarget(lower)
		if !ok || target != field {
			return nil, false
		}
		d, ok := firstDate(text)
		if !ok {
			return nil, false
		}
		return d, true
	}
}

// freeText cuts a captured clause at the first sentence break and trims
// trailing punctuation and whitespace.
func freeText(v string) (string, bool) {
	if i := strings.Index(v, ". "); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimRight(strings.TrimSpace(v), ".!?:- \t")
	v = strings.TrimSpace(v)
	return v, v != ""
}

func matchLocation(text, _ string) (any, bool) {
	v, ok := submatch(locationPattern, text)
	if !ok {
		return nil, false
	}
	if i := locationStop.FindStringIndex(v); i != nil {
		v = v[:i[0]]
	}
	loc, ok := freeText(v)
	if !ok {
		return nil, false
	}
	return loc, true
}

func matchProject(text, _ string) (any, bool) {
	v, ok := submatch(projectPattern, text)
	if !ok {
		return nil, false
	}
	if loc := projectStop.FindStringIndex(v); loc != nil {
		v = v[:loc[0]]
	}
	name, ok := freeText(v)
	if !ok {
		return nil, false
	}
	return name, true
}

// matchStage returns the earliest word in the text that is a stage code
func matchStage(text, _ string) (any, bool) {
	for _, w := range wordPattern.FindAllString(text, -1) {
		if s, err := types.ParseStage(w); err == nil {
			return s.String(), true
		}
	}
	return nil, false
}
