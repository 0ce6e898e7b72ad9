package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrDuplicateProject = goerr.New("duplicate project name")
	ErrMissingName      = goerr.New("name is required")
	ErrInvalidLogLevel  = goerr.New("invalid log level")
	ErrInvalidLogFormat = goerr.New("invalid log format")
	ErrInvalidNotice    = goerr.New("invalid build notice file")
)

// Context keys for error values
const (
	ConfigPathKey   = "config_path"
	ProjectIndexKey = "project_index"
	ProjectNameKey  = "project_name"
	FieldIDKey      = "field_id"
	LogLevelKey     = "log_level"
	LogFormatKey    = "log_format"
)
