package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// ConnectRedis opens the client that announces saved submissions. The client is
// tagged with name so it can be told apart in CLIENT LIST, and is only returned
// once the server answers a PING within the dial timeout.
func ConnectRedis(ctx context.Context, url, name string) (*redis.Client, error) {
	options, err := redisOptions(url, name)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to reach redis at %s: %w", options.Addr, err)
	}

	return client, nil
}

func redisOptions(url, name string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url must not be empty")
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if name != "" && options.ClientName == "" {
		options.ClientName = name
	}
	if options.DialTimeout == 0 || options.DialTimeout > redisDialTimeout {
		options.DialTimeout = redisDialTimeout
	}

	return options, nil
}
