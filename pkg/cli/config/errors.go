package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrMissingLabel    = goerr.New("link label is required")
	ErrMissingURL      = goerr.New("link url is required")
	ErrInvalidURL      = goerr.New("link url must be absolute")
	ErrDuplicateLabel  = goerr.New("duplicate link label")
	ErrInvalidTimezone = goerr.New("invalid timezone")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LabelKey      = "label"
	URLKey        = "url"
	LinkIndexKey  = "link_index"
)
