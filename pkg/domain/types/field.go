package types

import "fmt"

// FieldID identifies a declared build notice field
type FieldID string

const (
	FieldIdentifier      FieldID = "id"
	FieldNPINumber       FieldID = "npi_number"
	FieldPartNumber      FieldID = "part_number"
	FieldRevision        FieldID = "revision"
	FieldDescription     FieldID = "description"
	FieldQuantity        FieldID = "quantity"
	FieldBuildDate       FieldID = "build_date"
	FieldRequiredBy      FieldID = "required_by"
	FieldAssemblyLoc     FieldID = "assembly_location"
	FieldPriority        FieldID = "priority"
	FieldStatus          FieldID = "status"
	FieldNotes           FieldID = "notes"
	FieldProject         FieldID = "project"
	FieldModel           FieldID = "model"
	FieldCustomer        FieldID = "customer"
	FieldStage           FieldID = "stage"
	FieldProgramManager  FieldID = "program_manager"
	FieldProductEngineer FieldID = "product_engineer"
	FieldQualityEngineer FieldID = "quality_engineer"
)

// FieldKind represents the value shape of a field
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindSelect FieldKind = "select"
)

type fieldMeta struct {
	label    string
	kind     FieldKind
	readOnly bool
}

var fieldTable = map[FieldID]fieldMeta{
	FieldIdentifier:      {label: "ID", kind: FieldKindText, readOnly: true},
	FieldNPINumber:       {label: "NPI Number", kind: FieldKindText},
	FieldPartNumber:      {label: "Part Number", kind: FieldKindText},
	FieldRevision:        {label: "Revision", kind: FieldKindText},
	FieldDescription:     {label: "Description", kind: FieldKindText},
	FieldQuantity:        {label: "Quantity", kind: FieldKindNumber},
	FieldBuildDate:       {label: "Build Date", kind: FieldKindDate},
	FieldRequiredBy:      {label: "Required By", kind: FieldKindDate},
	FieldAssemblyLoc:     {label: "Assembly Location", kind: FieldKindText},
	FieldPriority:        {label: "Priority", kind: FieldKindSelect},
	FieldStatus:          {label: "Status", kind: FieldKindSelect},
	FieldNotes:           {label: "Notes", kind: FieldKindText},
	FieldProject:         {label: "Project", kind: FieldKindText},
	FieldModel:           {label: "Model", kind: FieldKindText},
	FieldCustomer:        {label: "Customer", kind: FieldKindText},
	FieldStage:           {label: "Stage", kind: FieldKindSelect},
	FieldProgramManager:  {label: "Program Manager", kind: FieldKindText},
	FieldProductEngineer: {label: "Product Engineer", kind: FieldKindText},
	FieldQualityEngineer: {label: "Quality Engineer", kind: FieldKindText},
}

// AllFieldIDs returns every declared field in form order, identifier first
func AllFieldIDs() []FieldID {
	return []FieldID{
		FieldIdentifier,
		FieldNPINumber,
		FieldPartNumber,
		FieldRevision,
		FieldDescription,
		FieldQuantity,
		FieldBuildDate,
		FieldRequiredBy,
		FieldAssemblyLoc,
		FieldPriority,
		FieldStatus,
		FieldNotes,
		FieldProject,
		FieldModel,
		FieldCustomer,
		FieldStage,
		FieldProgramManager,
		FieldProductEngineer,
		FieldQualityEngineer,
	}
}

// SettableFieldIDs returns the declared fields that user edits and suggestions may write
func SettableFieldIDs() []FieldID {
	all := AllFieldIDs()
	out := make([]FieldID, 0, len(all))
	for _, f := range all {
		if !f.IsReadOnly() {
			out = append(out, f)
		}
	}
	return out
}

// IsValid checks if the field is declared
func (f FieldID) IsValid() bool {
	_, ok := fieldTable[f]
	return ok
}

// IsReadOnly reports whether the field is system-generated
func (f FieldID) IsReadOnly() bool {
	return fieldTable[f].readOnly
}

// Label returns the human readable name used in validation messages
func (f FieldID) Label() string {
	if m, ok := fieldTable[f]; ok {
		return m.label
	}
	return string(f)
}

// Kind returns the value shape of the field. Undeclared fields report text.
func (f FieldID) Kind() FieldKind {
	if m, ok := fieldTable[f]; ok {
		return m.kind
	}
	return FieldKindText
}

// String returns the string representation of the field ID
func (f FieldID) String() string {
	return string(f)
}

// ParseFieldID parses a string into a declared FieldID
func ParseFieldID(s string) (FieldID, error) {
	id := FieldID(s)
	if !id.IsValid() {
		return "", fmt.Errorf("invalid field ID: %s", s)
	}
	return id, nil
}
