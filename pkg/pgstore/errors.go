package pgstore

import "errors"

var (
	ErrFailedToParseConfig     = errors.New("failed to parse postgres config")
	ErrFailedToOpenConnection  = errors.New("failed to open postgres connection")
	ErrFailedToApplyMigrations = errors.New("failed to apply flag store migrations")
)
