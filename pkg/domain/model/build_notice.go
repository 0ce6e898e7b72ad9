package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/buildnotice/pkg/domain/types"
)

// DateLayout is the calendar date format used by date fields
const DateLayout = "2006-01-02"

// BuildNoticeID is the system-generated identifier of a build notice
type BuildNoticeID string

// NewBuildNoticeID generates a new UUID v4 based BuildNoticeID
func NewBuildNoticeID() BuildNoticeID {
	return BuildNoticeID("BN-" + strings.ToUpper(uuid.New().String()))
}

// BuildNotice is the authoritative form state. Every declared field always
// holds a value; the zero value of each Go field is the "empty" form value.
type BuildNotice struct {
	ID               BuildNoticeID  `json:"id" toml:"id"`
	NPINumber        string         `json:"npi_number" toml:"npi_number"`
	PartNumber       string         `json:"part_number" toml:"part_number"`
	Revision         string         `json:"revision" toml:"revision"`
	Description      string         `json:"description" toml:"description"`
	Quantity         int            `json:"quantity" toml:"quantity"`
	BuildDate        *time.Time     `json:"build_date" toml:"build_date"`
	RequiredBy       *time.Time     `json:"required_by" toml:"required_by"`
	AssemblyLocation string         `json:"assembly_location" toml:"assembly_location"`
	Priority         types.Priority `json:"priority" toml:"priority"`
	Status           types.Status   `json:"status" toml:"status"`
	Notes            string         `json:"notes" toml:"notes"`

	Project         string      `json:"project" toml:"project"`
	Model           string      `json:"model" toml:"model"`
	Customer        string      `json:"customer" toml:"customer" masq:"secret"`
	Stage           types.Stage `json:"stage" toml:"stage"`
	ProgramManager  string      `json:"program_manager" toml:"program_manager"`
	ProductEngineer string      `json:"product_engineer" toml:"product_engineer"`
	QualityEngineer string      `json:"quality_engineer" toml:"quality_engineer"`

	CreatedAt time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" toml:"updated_at"`
}

// NewBuildNotice returns a defaulted build notice
func NewBuildNotice(id BuildNoticeID, now time.Time) *BuildNotice {
	return &BuildNotice{
		ID:        id,
		Priority:  types.PriorityMedium,
		Status:    types.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the notice
func (n *BuildNotice) Clone() *BuildNotice {
	if n == nil {
		return nil
	}
	c := *n
	c.BuildDate = cloneDate(n.BuildDate)
	c.RequiredBy = cloneDate(n.RequiredBy)
	return &c
}

// Get returns the current value of a field. Date fields yield nil when unset.
func (n *BuildNotice) Get(field types.FieldID) (any, error) {
	switch field {
	case types.FieldIdentifier:
		return string(n.ID), nil
	case types.FieldNPINumber:
		return n.NPINumber, nil
	case types.FieldPartNumber:
		return n.PartNumber, nil
	case types.FieldRevision:
		return n.Revision, nil
	case types.FieldDescription:
		return n.Description, nil
	case types.FieldQuantity:
		return n.Quantity, nil
	case types.FieldBuildDate:
		return dateValue(n.BuildDate), nil
	case types.FieldRequiredBy:
		return dateValue(n.RequiredBy), nil
	case types.FieldAssemblyLoc:
		return n.AssemblyLocation, nil
	case types.FieldPriority:
		return n.Priority.String(), nil
	case types.FieldStatus:
		return n.Status.String(), nil
	case types.FieldNotes:
		return n.Notes, nil
	case types.FieldProject:
		return n.Project, nil
	case types.FieldModel:
		return n.Model, nil
	case types.FieldCustomer:
		return n.Customer, nil
	case types.FieldStage:
		return n.Stage.String(), nil
	case types.FieldProgramManager:
		return n.ProgramManager, nil
	case types.FieldProductEngineer:
		return n.ProductEngineer, nil
	case types.FieldQualityEngineer:
		return n.QualityEngineer, nil
	default:
		return nil, goerr.Wrap(ErrUnknownField, "cannot read field", goerr.V(FieldIDKey, field))
	}
}

// Set writes a field, coercing the value to the field's shape. Malformed
// numbers become 0 and unparseable dates become unset; only unknown or
// read-only fields are rejected.
func (n *BuildNotice) Set(field types.FieldID, value any) error {
	if !field.IsValid() {
		return goerr.Wrap(ErrUnknownField, "cannot write field", goerr.V(FieldIDKey, field))
	}
	if field.IsReadOnly() {
		return goerr.Wrap(ErrReadOnlyField, "cannot write field", goerr.V(FieldIDKey, field))
	}

	switch field {
	case types.FieldNPINumber:
		n.NPINumber = CoerceText(value)
	case types.FieldPartNumber:
		n.PartNumber = CoerceText(value)
	case types.FieldRevision:
		n.Revision = CoerceText(value)
	case types.FieldDescription:
		n.Description = CoerceText(value)
	case types.FieldQuantity:
		n.Quantity = CoerceQuantity(value)
	case types.FieldBuildDate:
		n.BuildDate = CoerceDate(value)
	case types.FieldRequiredBy:
		n.RequiredBy = CoerceDate(value)
	case types.FieldAssemblyLoc:
		n.AssemblyLocation = CoerceText(value)
	case types.FieldPriority:
		n.Priority = types.Priority(strings.ToLower(strings.TrimSpace(CoerceText(value))))
	case types.FieldStatus:
		n.Status = types.Status(strings.ToLower(strings.TrimSpace(CoerceText(value))))
	case types.FieldNotes:
		n.Notes = CoerceText(value)
	case types.FieldProject:
		n.Project = CoerceText(value)
	case types.FieldModel:
		n.Model = CoerceText(value)
	case types.FieldCustomer:
		n.Customer = CoerceText(value)
	case types.FieldStage:
		n.Stage = types.Stage(strings.ToUpper(strings.TrimSpace(CoerceText(value))))
	case types.FieldProgramManager:
		n.ProgramManager = CoerceText(value)
	case types.FieldProductEngineer:
		n.ProductEngineer = CoerceText(value)
	case types.FieldQualityEngineer:
		n.QualityEngineer = CoerceText(value)
	}
	return nil
}

// Values returns every declared field with its current value
func (n *BuildNotice) Values() FieldValues {
	out := make(FieldValues, len(types.AllFieldIDs()))
	for _, f := range types.AllFieldIDs() {
		v, _ := n.Get(f)
		out[f] = v
	}
	return out
}

// FieldValues maps every declared field to its value
type FieldValues map[types.FieldID]any

// CoerceText converts an arbitrary value to a text field value
func CoerceText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// CoerceQuantity converts an arbitrary value to a quantity, yielding 0 for
// anything that is not a number.
func CoerceQuantity(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return 0
		}
		return int(v)
	case uint:
		if v > math.MaxInt {
			return 0
		}
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		if v > math.MaxInt {
			return 0
		}
		return int(v)
	case float32:
		return CoerceQuantity(float64(v))
	case float64:
		if math.IsNaN(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0
		}
		return int(v)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// CoerceDate converts an arbitrary value to a date, yielding nil when the
// value is empty or not a recognizable date.
func CoerceDate(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return cloneDate(v)
	case string:
		return ParseDate(v)
	default:
		return nil
	}
}

// ParseDate parses YYYY-MM-DD or RFC3339 text. Returns nil on failure.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

// FormatDate renders a date field value, empty when unset
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
