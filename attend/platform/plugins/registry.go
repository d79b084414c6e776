package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/yogansh2008/AutoAttendDevArc/attend/config"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
)

// Contribution describes the resolvers a plugin provides.
type Contribution struct {
	Platforms []platform.Resolver
	// Priority orders plugins for detection; lower goes first.
	Priority int
}

// Factory creates a plugin contribution based on config and logger.
type Factory func(cfg *config.Config, logger *logpkg.Logger) (*Contribution, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register registers a plugin factory by name.
func Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("plugin name required")
	}
	if factory == nil {
		return fmt.Errorf("plugin factory required")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}
	factories[name] = factory
	return nil
}

// Get returns a registered factory by name.
func Get(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	factory, ok := factories[name]
	return factory, ok
}

// Names returns all registered plugin names.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	nameList := make([]string, 0, len(factories))
	for name := range factories {
		nameList = append(nameList, name)
	}
	sort.Strings(nameList)
	return nameList
}

// Loaded is a contribution built by Load, tagged with its plugin name.
type Loaded struct {
	Name string
	*Contribution
}

// Load builds every enabled plugin and returns the contributions ordered by
// priority, then name. Plugins that fail to build are logged and skipped.
func Load(cfg *config.Config, logger *logpkg.Logger) []Loaded {
	names := Names()
	loaded := make([]Loaded, 0, len(names))
	for _, name := range names {
		if !cfg.PluginEnabled(name) {
			logger.Info("plugin disabled by config", "plugin", name)
			continue
		}
		factory, _ := Get(name)
		contrib, err := factory(cfg, logger)
		if err != nil {
			logger.Error("plugin init failed", "plugin", name, "error", err)
			continue
		}
		if contrib == nil || len(contrib.Platforms) == 0 {
			continue
		}
		loaded = append(loaded, Loaded{Name: name, Contribution: contrib})
	}
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].Priority < loaded[j].Priority
	})
	return loaded
}
