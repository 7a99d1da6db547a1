package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	maxSize uint64
	strict  bool
	calls   []string
}

func withMaxSize(n uint64) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if n == 42 {
			return errors.New("unlucky size")
		}
		c.maxSize = n
		c.calls = append(c.calls, "maxSize")

		return nil
	})
}

func withStrict(v bool) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.strict = v
		c.calls = append(c.calls, "strict")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withStrict(true), withMaxSize(1024))

		require.NoError(t, err)
		require.True(t, cfg.strict)
		require.Equal(t, uint64(1024), cfg.maxSize)
		require.Equal(t, []string{"strict", "maxSize"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, withMaxSize(42), withStrict(true))

		require.EqualError(t, err, "unlucky size")
		require.False(t, cfg.strict)
		require.Empty(t, cfg.calls)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply(cfg, nil, withStrict(true), nil)

		require.NoError(t, err)
		require.Equal(t, []string{"strict"}, cfg.calls)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&testConfig{}))
	})
}
