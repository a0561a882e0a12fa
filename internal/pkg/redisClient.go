package client

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

func RedisClient() *redis.Client {
	uri := os.Getenv("REDIS_URL")
	opts, err := redis.ParseURL(uri)
	if err != nil {
		log.Fatalf("error to parse REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("error to connect the Redis: %v", err)
	}

	return client
}
