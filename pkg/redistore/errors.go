package redistore

import "errors"

var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady           = errors.New("redis did not become ready within the given time period")
	ErrMalformedValue          = errors.New("malformed flag value in redis")
)
