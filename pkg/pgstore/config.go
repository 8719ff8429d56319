package pgstore

import "time"

// Config holds PostgreSQL connection settings for the flag store.
type Config struct {
	ConnectionString string        `env:"FLAGS_PG_CONN_URL,required"`                  // ConnectionString is the connection string to the database.
	MaxOpenConns     int32         `env:"FLAGS_PG_MAX_OPEN_CONNS" envDefault:"10"`     // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns     int32         `env:"FLAGS_PG_MAX_IDLE_CONNS" envDefault:"2"`      // MaxIdleConns is the minimum number of idle connections kept warm.
	MaxConnLifetime  time.Duration `env:"FLAGS_PG_MAX_CONN_LIFETIME" envDefault:"30m"` // MaxConnLifetime is the maximum amount of time a connection may be reused.

	RetryAttempts int           `env:"FLAGS_PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of retry attempts to connect.
	RetryInterval time.Duration `env:"FLAGS_PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the base interval between retry attempts.
}
