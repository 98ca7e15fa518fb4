package checkers

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCheckerFailsWhenUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer rdb.Close()

	ch := NewRedisChecker(rdb)
	assert.Equal(t, "redis", ch.Name())
	assert.Error(t, ch.Check(context.Background()))
}
