package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("WARNING")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)

	level, ok = ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestTagFiltering(t *testing.T) {
	var out bytes.Buffer
	cfg := NewConfig()
	cfg.LogLevel = "debug"
	cfg.DisabledTags = []string{"Noisy"}
	Init(cfg, &out)
	defer Init(NewConfig(), nil)

	DebugTagf("noisy", "dropped %d", 1)
	DebugTagf("fence", "kept %d", 2)

	assert.NotContains(t, out.String(), "dropped")
	assert.Contains(t, out.String(), "kept 2")
	assert.Contains(t, out.String(), "tag=fence")
}

func TestEnabledTagsDropUntagged(t *testing.T) {
	var out bytes.Buffer
	cfg := NewConfig()
	cfg.EnabledTags = []string{"session"}
	Init(cfg, &out)
	defer Init(NewConfig(), nil)

	Infof("untagged")
	logAtLevel(slog.LevelInfo, "session", "tagged")

	assert.NotContains(t, out.String(), "untagged")
	assert.Contains(t, out.String(), "tagged")
}

func TestPackageFiltering(t *testing.T) {
	var out bytes.Buffer
	cfg := NewConfig()
	cfg.DisabledPackages = []string{"logger"}
	Init(cfg, &out)
	defer Init(NewConfig(), nil)

	Errorf("from the logger package")
	assert.Empty(t, out.String())
}

func TestLevelGate(t *testing.T) {
	var out bytes.Buffer
	Init(NewConfig(), &out)
	defer Init(NewConfig(), nil)

	Debugf("hidden")
	Warnf("visible")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "visible")
}

func TestNameFilter(t *testing.T) {
	open := newNameFilter(nil, nil)
	assert.True(t, open.allows("anything"))
	assert.False(t, open.restricted())

	f := newNameFilter([]string{"Fence", " session "}, []string{"session"})
	assert.True(t, f.restricted())
	assert.True(t, f.allows("fence"))
	assert.False(t, f.allows("session"), "disabled wins")
	assert.False(t, f.allows("preview"))
}
