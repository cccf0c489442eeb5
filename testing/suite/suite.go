// Package suite runs repository tests against a disposable redis container.
package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerLifetime = 2 * time.Minute
	startupTimeout    = 2 * time.Minute
)

const (
	redisImage   = "redis"
	redisTag     = "7-alpine"
	redisTCPPort = "6379/tcp"
)

// Suite is what a session store test needs: a logger and a clean redis.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts redis for the test and returns a context bounded by the startup
// timeout. Needs a docker daemon, so -short skips it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis suite needs docker")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	st := &Suite{
		T:      t,
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})).With("test", t.Name()),
	}
	st.startRedis(ctx)

	return ctx, st
}

// Flush drops every session key so a test can start over on the same container.
func (that *Suite) Flush(ctx context.Context) {
	that.Helper()

	if err := that.Storage.FlushDB(ctx).Err(); err != nil {
		that.Fatalf("could not flush redis: %v", err)
	}
}

func (that *Suite) startRedis(ctx context.Context) {
	that.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		that.Fatalf("could not connect to docker: %v", err)
	}

	pool.MaxWait = startupTimeout

	container, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(host *docker.HostConfig) {
		host.AutoRemove = true
		host.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		that.Fatalf("could not start redis: %v", err)
	}

	// hard kill in case cleanup never runs
	_ = container.Expire(uint(containerLifetime.Seconds()))

	client := redis.NewClient(&redis.Options{Addr: container.GetHostPort(redisTCPPort)})

	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		_ = pool.Purge(container)

		that.Fatalf("redis never became ready: %v", err)
	}

	that.Logger.Debug("redis ready", "addr", client.Options().Addr)

	that.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(container); err != nil {
			that.Errorf("could not remove redis container: %v", err)
		}
	})

	that.Storage = client
	that.Flush(ctx)
}
