package model

import "github.com/m-mizutani/goerr/v2"

// Field access errors
var (
	ErrUnknownField     = goerr.New("unknown field")
	ErrReadOnlyField    = goerr.New("field is read-only")
	ErrProjectNotFound  = goerr.New("project not found")
	ErrDuplicateProject = goerr.New("duplicate project name")
	ErrInvalidProject   = goerr.New("invalid project entry")
)

// Context keys for error values
const (
	FieldIDKey     = "field_id"
	FieldValueKey  = "field_value"
	ActualTypeKey  = "actual_type"
	ProjectNameKey = "project_name"
)
