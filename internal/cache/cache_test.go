package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRequiresAddress(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrEmptyAddr)
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var dest []string
	assert.False(t, c.GetJSON(ctx, "key", &dest))
	assert.Empty(t, dest)

	// Writes and Close must be safe too.
	c.SetJSON(ctx, "key", []string{"v"}, time.Minute)
	assert.NoError(t, c.Close())
}
