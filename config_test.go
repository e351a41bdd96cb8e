package ssepoll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	c := newConfig(false)

	tests := []struct {
		key      string
		expected interface{}
	}{
		{KeySleepTime, 0.5},
		{KeyExecLimit, 600},
		{KeyClientReconnect, 1},
		{KeyAllowCORS, false},
		{KeyKeepAliveTime, 300},
		{KeyIsReconnect, false},
		{KeyUseChunkedEncoding, false},
	}

	for _, test := range tests {
		v, ok := c.Get(test.key)
		assert.True(t, ok, test.key)
		assert.Equal(t, test.expected, v, test.key)
	}
}

func TestConfigSetReadOnly(t *testing.T) {
	c := newConfig(true)

	err := c.Set(KeyIsReconnect, false)
	assert.ErrorIs(t, err, ErrReadOnlyKey)

	// value derived at construction is untouched
	v, ok := c.Get(KeyIsReconnect)
	assert.True(t, ok)
	assert.Equal(t, true, v)
}

func TestConfigRemoveProtected(t *testing.T) {
	c := newConfig(false)

	for key := range protectedKeys {
		err := c.Remove(key)
		assert.ErrorIs(t, err, ErrProtectedKey, key)

		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
}

func TestConfigCustomKeys(t *testing.T) {
	c := newConfig(false)

	_, ok := c.Get("custom")
	assert.False(t, ok)

	assert.NoError(t, c.Set("custom", "value"))
	v, ok := c.Get("custom")
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	assert.NoError(t, c.Remove("custom"))
	_, ok = c.Get("custom")
	assert.False(t, ok)

	// removing an absent custom key is a no-op
	assert.NoError(t, c.Remove("never-set"))
}

func TestConfigDurations(t *testing.T) {
	c := newConfig(false)

	assert.Equal(t, 500*time.Millisecond, c.sleepTime())
	assert.Equal(t, 600*time.Second, c.execLimit())
	assert.Equal(t, time.Second, c.clientReconnect())
	assert.Equal(t, 300*time.Second, c.keepAliveTime())

	assert.NoError(t, c.Set(KeySleepTime, 0.25))
	assert.Equal(t, 250*time.Millisecond, c.sleepTime())

	assert.NoError(t, c.Set(KeyExecLimit, 0))
	assert.Equal(t, time.Duration(0), c.execLimit())

	assert.NoError(t, c.Set(KeyKeepAliveTime, 2*time.Second))
	assert.Equal(t, 2*time.Second, c.keepAliveTime())
}
