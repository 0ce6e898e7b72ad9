package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// ValidationResult is the outcome of validating a single field
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// ValidationMap holds per-field results. An absent key means the field has
// not been validated yet.
type ValidationMap map[types.FieldID]ValidationResult

// IsValid reports whether every entry passes. An empty map is valid.
func (m ValidationMap) IsValid() bool {
	for _, r := range m {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Failed returns the failing fields in declaration order
func (m ValidationMap) Failed() []types.FieldID {
	var out []types.FieldID
	for _, f := range types.AllFieldIDs() {
		if r, ok := m[f]; ok && !r.Valid {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy of the map
func (m ValidationMap) Clone() ValidationMap {
	if m == nil {
		return nil
	}
	c := make(ValidationMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// IsValid reports whether every entry of the map passes
func IsValid(m ValidationMap) bool {
	return m.IsValid()
}

var requiredFields = []types.FieldID{
	types.FieldNPINumber,
	types.FieldPartNumber,
	types.FieldRevision,
	types.FieldDescription,
	types.FieldQuantity,
	types.FieldBuildDate,
	types.FieldAssemblyLoc,
	types.FieldRequiredBy,
}

// RequiredFields returns the fields that must pass before a notice can be submitted
func RequiredFields() []types.FieldID {
	out := make([]types.FieldID, len(requiredFields))
	copy(out, requiredFields)
	return out
}

// ValidateField checks a single field value. Fields without a rule always pass.
func ValidateField(field types.FieldID, value any) ValidationResult {
	switch field {
	case types.FieldNPINumber,
		types.FieldPartNumber,
		types.FieldRevision,
		types.FieldDescription,
		types.FieldAssemblyLoc:
		return validateRequiredText(field, value)
	case types.FieldQuantity:
		return validatePositive(field, value)
	case types.FieldBuildDate,
		types.FieldRequiredBy:
		return validateDatePresent(field, value)
	case types.FieldPriority:
		return validateOption(field, value, func(s string) bool { return types.Priority(s).IsValid() }, priorityNames())
	case types.FieldStatus:
		return validateOption(field, value, func(s string) bool { return types.Status(s).IsValid() }, statusNames())
	case types.FieldStage:
		return validateOption(field, value, func(s string) bool { return types.Stage(s).IsValid() }, stageNames())
	default:
		return ValidationResult{Valid: true}
	}
}

// ValidateForm validates the required fields of a notice. Result keys are
// exactly RequiredFields().
func ValidateForm(n *BuildNotice) ValidationMap {
	result := make(ValidationMap, len(requiredFields))
	for _, f := range requiredFields {
		v, _ := n.Get(f)
		result[f] = ValidateField(f, v)
	}
	return result
}

func validateRequiredText(field types.FieldID, value any) ValidationResult {
	if strings.TrimSpace(CoerceText(value)) == "" {
		return invalid(fmt.Sprintf("%s is required", field.Label()))
	}
	return ValidationResult{Valid: true}
}

func validatePositive(field types.FieldID, value any) ValidationResult {
	msg := fmt.Sprintf("%s must be greater than 0", field.Label())
	switch v := value.(type) {
	case float32:
		if f := float64(v); f > 0 && !math.IsInf(f, 1) {
			return ValidationResult{Valid: true}
		}
	case float64:
		if v > 0 && !math.IsInf(v, 1) {
			return ValidationResult{Valid: true}
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && f > 0 {
			return ValidationResult{Valid: true}
		}
	default:
		// integer kinds share the quantity coercion rules
		if CoerceQuantity(value) > 0 {
			return ValidationResult{Valid: true}
		}
	}
	return invalid(msg)
}

func validateDatePresent(field types.FieldID, value any) ValidationResult {
	msg := fmt.Sprintf("%s date is required", field.Label())
	if field == types.FieldBuildDate {
		msg = fmt.Sprintf("%s is required", field.Label())
	}

	switch v := value.(type) {
	case nil:
		return invalid(msg)
	case *time.Time:
		if v == nil || v.IsZero() {
			return invalid(msg)
		}
	case time.Time:
		if v.IsZero() {
			return invalid(msg)
		}
	case string:
		if strings.TrimSpace(v) == "" {
			return invalid(msg)
		}
	}
	return ValidationResult{Valid: true}
}

func validateOption(field types.FieldID, value any, ok func(string) bool, names []string) ValidationResult {
	s := strings.TrimSpace(CoerceText(value))
	if s == "" || ok(s) {
		return ValidationResult{Valid: true}
	}
	return invalid(fmt.Sprintf("%s must be one of: %s", field.Label(), strings.Join(names, ", ")))
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Message: msg}
}

func priorityNames() []string {
	var out []string
	for _, p := range types.AllPriorities() {
		out = append(out, p.String())
	}
	return out
}

func statusNames() []string {
	var out []string
	for _, s := range types.AllStatuses() {
		out = append(out, s.String())
	}
	return out
}

func stageNames() []string {
	var out []string
	for _, s := range types.AllStages() {
		out = append(out, s.String())
	}
	return out
}
