package dynamostore

import "errors"

var (
	ErrInvalidConfig       = errors.New("table name and region are required")
	ErrFailedToLoadConfig  = errors.New("failed to load aws config")
	ErrFailedToCreateTable = errors.New("failed to create flags table")
	ErrMalformedItem       = errors.New("malformed flag item in dynamodb")
)
