package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set holding user-added words.
const DefaultKey = "custom_dict"

// CustomDict wraps a Redis client to store words users accept as correct.
type CustomDict struct {
	client redis.UniversalClient
	key    string
}

// New creates a new CustomDict with the provided Redis client.
func New(client redis.UniversalClient) *CustomDict {
	return &CustomDict{client: client, key: DefaultKey}
}

// WithKey returns a copy that stores words under another set.
func (cd *CustomDict) WithKey(key string) *CustomDict {
	return &CustomDict{client: cd.client, key: key}
}

// Add inserts a word into the custom dictionary.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, normalize(word)).Err()
}

// Remove deletes a word from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, normalize(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}

// Ping checks that Redis is reachable.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
