package customdict

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDict connects to the Redis named by REDIS_ADDR, or localhost, and
// skips the test when none is reachable.
func newTestDict(t *testing.T) *CustomDict {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	d := New(client)
	if err := d.Ping(ctx); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}

	d = d.WithKey(fmt.Sprintf("custom_dict_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() { client.Del(context.Background(), d.key) })
	return d
}

func TestAddRemoveAll(t *testing.T) {
	d := newTestDict(t)
	ctx := context.Background()

	require.NoError(t, d.Add(ctx, "  Golang "))
	require.NoError(t, d.Add(ctx, "phở"))
	require.NoError(t, d.Add(ctx, "golang"))

	words, err := d.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"golang", "phở"}, words)

	require.NoError(t, d.Remove(ctx, "GOLANG"))
	words, err = d.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"phở"}, words)
}

func TestDefaultKey(t *testing.T) {
	d := New(redis.NewClient(&redis.Options{Addr: "localhost:0"}))
	assert.Equal(t, DefaultKey, d.key)
	assert.Equal(t, "other", d.WithKey("other").key)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "việt", normalize("  Việt\t"))
}
