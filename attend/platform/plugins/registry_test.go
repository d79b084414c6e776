package plugins

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogansh2008/AutoAttendDevArc/attend/config"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
)

type namedResolver string

func (n namedResolver) Name() string                         { return string(n) }
func (n namedResolver) Resolve(string) (platform.Link, bool) { return platform.Link{}, false }

func staticFactory(priority int, names ...string) Factory {
	return func(*config.Config, *logpkg.Logger) (*Contribution, error) {
		resolvers := make([]platform.Resolver, 0, len(names))
		for _, name := range names {
			resolvers = append(resolvers, namedResolver(name))
		}
		return &Contribution{Platforms: resolvers, Priority: priority}, nil
	}
}

func writeConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestRegisterValidation(t *testing.T) {
	assert.Error(t, Register("", staticFactory(0, "x")))
	assert.Error(t, Register("test-nil-factory", nil))

	require.NoError(t, Register("test-dup", staticFactory(0, "dup")))
	assert.Error(t, Register("test-dup", staticFactory(0, "dup")))

	_, ok := Get("test-dup")
	assert.True(t, ok)
	_, ok = Get("test-missing")
	assert.False(t, ok)
	assert.Contains(t, Names(), "test-dup")
}

func TestLoadOrdersByPriority(t *testing.T) {
	require.NoError(t, Register("test-late", staticFactory(900, "late")))
	require.NoError(t, Register("test-early", staticFactory(-900, "early")))
	require.NoError(t, Register("test-off", staticFactory(-1000, "off")))
	require.NoError(t, Register("test-empty", staticFactory(0)))
	require.NoError(t, Register("test-broken", func(*config.Config, *logpkg.Logger) (*Contribution, error) {
		return nil, errors.New("boom")
	}))

	cfg := writeConfig(t, "[plugins.test-off]\nenabled = false\n")
	loaded := Load(cfg, logpkg.NewDiscard())

	var names []string
	for _, l := range loaded {
		if strings.HasPrefix(l.Name, "test-") {
			names = append(names, l.Name)
		}
	}
	// test-dup from TestRegisterValidation has priority 0 and may be present.
	filtered := names[:0]
	for _, name := range names {
		if name != "test-dup" {
			filtered = append(filtered, name)
		}
	}
	assert.Equal(t, []string{"test-early", "test-late"}, filtered)
}
