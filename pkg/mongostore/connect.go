package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrFailedToConnect is returned when the server cannot be reached within
// the configured retry budget.
var ErrFailedToConnect = errors.New("failed to connect to mongo")

// Connect creates a mongo client with retry logic and returns the database
// configured for the flag store.
func Connect(ctx context.Context, cfg Config) (*mongo.Database, error) {
	for range cfg.RetryAttempts {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.ConnectionURL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize),
		)
		if err == nil {
			if err := client.Ping(ctx, nil); err == nil {
				return client.Database(cfg.Database), nil
			}
			_ = client.Disconnect(ctx)
		}

		time.Sleep(cfg.RetryInterval)
	}

	return nil, ErrFailedToConnect
}
