package prompt

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/redis/go-redis/v9"
)

// ErrSourceNotFound means the instruction resource does not exist.
// Callers fall back to DefaultInstruction in that case.
var ErrSourceNotFound = errors.New("instruction source not found")

// Source fetches the raw instruction resource.
type Source interface {
	Load(ctx context.Context) (string, error)
	Describe() string
}

type fileSource struct {
	path string
}

func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading %s: %w", s.path, ErrSourceNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}
	return string(b), nil
}

func (s *fileSource) Describe() string {
	return "file:" + s.path
}

type redisSource struct {
	client redis.Cmdable
	key    string
}

// NewRedisSource reads the instruction from a plain string key.
func NewRedisSource(client redis.Cmdable, key string) Source {
	return &redisSource{client: client, key: key}
}

func (s *redisSource) Load(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("redis key %s: %w", s.key, ErrSourceNotFound)
		}
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return v, nil
}

func (s *redisSource) Describe() string {
	return "redis:" + s.key
}
