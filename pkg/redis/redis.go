package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	URL          string `split_words:"true" default:"redis://localhost:6379/0"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

func (r *Config) client() (*redis.Client, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, err
	}

	opts.ReadTimeout = time.Duration(r.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(r.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(r.DialTimeout) * time.Second

	return redis.NewClient(opts), nil
}

// New builds a client and verifies connectivity with a ping.
func (r *Config) New() (*redis.Client, error) {
	client, err := r.client()
	if err != nil {
		return nil, err
	}

	if cmd := client.Ping(context.Background()); cmd.Err() != nil {
		return nil, cmd.Err()
	}

	return client, nil
}

// NewLenient builds a client without requiring Redis to be reachable.
// History degrades to in-process memory when the backend is down, so an
// unreachable Redis must not abort startup. An error is returned only
// for an unparseable URL.
func (r *Config) NewLenient() (*redis.Client, error) {
	return r.client()
}
