package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/Mohit8269/Action-House/base/ctx"
)

const (
	// Forever marks a key that should never expire
	Forever = time.Duration(-1)
)

var (
	ErrNotFound = errors.New("redis key not found")
	ErrNoTTL    = errors.New("redis key has no associated ttl")
)

// Service wraps the redis commands the repo relies on
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, ks ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	Incrby(c ctx.Ctx, key string, val int) (int64, error)
	TTL(c ctx.Ctx, key string) (int, error)
	GetConn() (redis.Conn, error)
	Name() string
}
