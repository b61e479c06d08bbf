package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devdeck/internal/platform/config"
)

func TestNewWithoutURLIsDisabled(t *testing.T) {
	client, err := New(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRejectsMalformedURL(t *testing.T) {
	_, err := New(config.RedisConfig{URL: "://not-a-url"})
	require.Error(t, err)
}

func TestPoolDefaults(t *testing.T) {
	assert.Equal(t, defaultPoolSize, orDefault(0, defaultPoolSize))
	assert.Equal(t, 32, orDefault(32, defaultPoolSize))
	assert.Equal(t, defaultDialTimeout, orDefaultDuration(0, defaultDialTimeout))
	assert.Equal(t, time.Second, orDefaultDuration(time.Second, defaultDialTimeout))
}
