package config

import "github.com/m-mizutani/goerr/v2"

var (
	ErrMissingDefaultChannel = goerr.New("default_channel must not be empty")
	ErrDuplicateDashboard    = goerr.New("duplicate dashboard entry")
)
