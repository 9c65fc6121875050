package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitaker/blenny/internal/config"
)

type greeter struct {
	message string
}

func TestSetAndGet(t *testing.T) {
	reg := New(nil)

	key := Key[*greeter]("test.greeter")
	Set(reg, key, &greeter{message: "hello"})

	got, ok := Get(reg, key)
	require.True(t, ok)
	assert.Equal(t, "hello", got.message)
}

func TestGetMissingKey(t *testing.T) {
	reg := New(nil)

	got, ok := Get(reg, Key[*greeter]("test.missing"))
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMustGetPanicsWhenMissing(t *testing.T) {
	reg := New(nil)

	assert.Panics(t, func() {
		MustGet(reg, Key[*greeter]("test.missing"))
	})
}

func TestConfigRoundtrip(t *testing.T) {
	cfg := &config.Config{Addr: ":9999"}
	reg := New(cfg)

	require.NotNil(t, reg.Config())
	assert.Equal(t, ":9999", reg.Config().GetAddr())
}
