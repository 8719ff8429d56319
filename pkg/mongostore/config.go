package mongostore

import "time"

// Config holds MongoDB connection settings for the flag store.
type Config struct {
	ConnectionURL  string        `env:"FLAGS_MONGODB_URL,required"`                     // ConnectionURL is the URL of the database.
	Database       string        `env:"FLAGS_MONGODB_DATABASE" envDefault:"flags"`      // Database is the database holding the flags collection.
	ConnectTimeout time.Duration `env:"FLAGS_MONGODB_CONNECT_TIMEOUT" envDefault:"10s"` // ConnectTimeout is the timeout for connecting to the database.
	MaxPoolSize    uint64        `env:"FLAGS_MONGODB_MAX_POOL_SIZE" envDefault:"100"`   // MaxPoolSize is the maximum number of connections in the pool.
	RetryAttempts  int           `env:"FLAGS_MONGODB_RETRY_ATTEMPTS" envDefault:"3"`    // RetryAttempts is the number of retry attempts to connect.
	RetryInterval  time.Duration `env:"FLAGS_MONGODB_RETRY_INTERVAL" envDefault:"5s"`   // RetryInterval is the interval between retry attempts.
}
