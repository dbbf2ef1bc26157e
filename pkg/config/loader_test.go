package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfort/guardkit/pkg/config"
)

type testConfig struct {
	Name    string        `env:"CONFIG_TEST_NAME" envDefault:"fallback"`
	Window  time.Duration `env:"CONFIG_TEST_WINDOW" envDefault:"15m"`
	Retries int           `env:"CONFIG_TEST_RETRIES" envDefault:"3"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_REQUIRED_SECRET,required"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, 15*time.Minute, cfg.Window)
	assert.Equal(t, 3, cfg.Retries)
}

func TestLoadCachesPerType(t *testing.T) {
	var first testConfig
	require.NoError(t, config.Load(&first))

	// Changing the environment after the first load must not affect the
	// cached value; configuration is a process-lifetime decision.
	t.Setenv("CONFIG_TEST_NAME", "changed")

	var second testConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, first.Name, second.Name)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	require.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
