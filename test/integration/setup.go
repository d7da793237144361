package integration

import (
	"context"
	"testing"
	"time"

	"restaurant-site/internal/session"

	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRedis represents a Redis test instance.
type TestRedis struct {
	Container *tcredis.RedisContainer
	Client    *goredis.Client
	Addr      string
}

// SetupTestRedis starts a Redis container and connects a client to it.
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	connStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	opts, err := goredis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	client, err := session.NewRedisClient(ctx, opts.Addr, opts.Password, opts.DB)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestRedis{
		Container: redisContainer,
		Client:    client,
		Addr:      opts.Addr,
	}
}

// FlushRedis removes every key from the test instance.
func FlushRedis(t *testing.T, client *goredis.Client) {
	t.Helper()

	if err := client.FlushAll(context.Background()).Err(); err != nil {
		t.Logf("failed to flush redis: %v", err)
	}
}
