package redistore

import "time"

// Config holds Redis connection settings for the flag store.
type Config struct {
	ConnectionURL  string        `env:"FLAGS_REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // ConnectionURL should be in the format "redis://:password@localhost:6379/0"
	RetryAttempts  int           `env:"FLAGS_REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // RetryAttempts is the number of retry attempts to connect.
	RetryInterval  time.Duration `env:"FLAGS_REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // RetryInterval is the interval between retry attempts.
	ConnectTimeout time.Duration `env:"FLAGS_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // ConnectTimeout bounds the whole connect-with-retries phase.
}
