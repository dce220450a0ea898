package redis

import (
	// Go Internal Packages
	"context"

	// External Packages
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// Connect connects to the redis db and returns the client, retrying the first ping up to
// retries times.
func Connect(ctx context.Context, uri, password string, retries uint64) (*redis.Client, error) {
	// Configure the Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri,      // Redis server address
		Password: password, // Redis password
		DB:       0,        // Default DB
	})

	ping := func() error {
		return rdb.Ping(ctx).Err()
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx)
	if pingErr := backoff.Retry(ping, b); pingErr != nil {
		_ = rdb.Close()
		return nil, pingErr
	}
	return rdb, nil
}
