package stash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutOnce_SecondPutIsRejectedWhileLive(t *testing.T) {
	s := New(time.Minute)

	assert.True(t, s.PutOnce("order-fp", "in-flight"))
	assert.False(t, s.PutOnce("order-fp", "duplicate"))

	value, ok := s.Consume("order-fp")
	require.True(t, ok)
	assert.Equal(t, "in-flight", value)
}

func TestConsume_IsReadOnce(t *testing.T) {
	s := New(time.Minute)
	s.PutOnce("token", "receipt-uuid")

	value, ok := s.Consume("token")
	require.True(t, ok)
	assert.Equal(t, "receipt-uuid", value)

	_, ok = s.Consume("token")
	assert.False(t, ok, "a consumed entry stays gone")
}

func TestClear_AllowsReuse(t *testing.T) {
	s := New(time.Minute)
	s.PutOnce("order-fp", "in-flight")
	s.Clear("order-fp")

	assert.True(t, s.PutOnce("order-fp", "second attempt"))
}

func TestExpiry(t *testing.T) {
	s := New(time.Minute)
	current := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	s.PutOnce("key", "value")
	current = current.Add(2 * time.Minute)

	_, ok := s.Consume("key")
	assert.False(t, ok, "expired entries do not resolve")
	assert.True(t, s.PutOnce("key", "fresh"), "expired entries do not block a new put")
}

func TestMissingKey(t *testing.T) {
	s := New(time.Minute)
	_, ok := s.Consume("never-set")
	assert.False(t, ok)
	s.Clear("never-set")
}
