package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, 255, cfg.GCThreshold)
	assert.False(t, cfg.GCForced)
	assert.False(t, cfg.Strict)
	assert.Equal(t, 8191, cfg.SymtabBuckets)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfigOverride(t *testing.T) {
	cfg := NewConfig()
	cfg.Strict = true
	cfg.GCThreshold = 10
	cfg.LogLevel = "debug"
	assert.True(t, cfg.Strict)
	assert.Equal(t, 10, cfg.GCThreshold)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfigIndependentAcrossInstances(t *testing.T) {
	a := NewConfig()
	b := NewConfig()
	a.Strict = true
	assert.False(t, b.Strict, "mutating one Config must not affect another")
}
