package platform

import (
	"strings"
	"sync"

	"github.com/yogansh2008/AutoAttendDevArc/attend/platform/registry"
)

// DefaultManager implements the Manager interface on top of an ordered registry.
// Registration order decides detection priority.
type DefaultManager struct {
	registry *registry.Registry[Resolver]
	mu       sync.RWMutex
	meta     map[string]Meta
	aliases  map[string]string
}

// NewManager creates a new manager with an empty registry.
func NewManager() *DefaultManager {
	return NewManagerWithRegistry(registry.New[Resolver]())
}

// NewManagerWithRegistry creates a new manager with a custom registry.
// This is useful for testing or isolated instances.
func NewManagerWithRegistry(reg *registry.Registry[Resolver]) *DefaultManager {
	return &DefaultManager{
		registry: reg,
		meta:     make(map[string]Meta),
		aliases:  make(map[string]string),
	}
}

// Register adds a resolver to the manager, replacing any resolver with the
// same name. Aliases of a replaced resolver that the new one does not
// declare are dropped.
func (m *DefaultManager) Register(resolver Resolver) {
	if resolver == nil {
		return
	}
	name := resolver.Name()
	if name == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.registry.Replace(resolver); err != nil {
		return
	}
	for alias, target := range m.aliases {
		if target == name {
			delete(m.aliases, alias)
		}
	}
	meta := buildMeta(resolver, name)
	m.meta[name] = meta
	m.indexAliases(meta)
}

// Get retrieves a resolver by name or alias.
// Returns nil if nothing is registered under that name.
func (m *DefaultManager) Get(name string) Resolver {
	canonical, ok := m.ResolveAlias(name)
	if !ok {
		return nil
	}
	resolver, ok := m.registry.Get(canonical)
	if !ok {
		return nil
	}
	return resolver
}

// List returns all registered platform names in registration order.
func (m *DefaultManager) List() []string {
	resolvers := m.registry.GetAll()
	names := make([]string, 0, len(resolvers))
	for _, r := range resolvers {
		names = append(names, r.Name())
	}
	return names
}

// Resolve canonicalizes input with the named platform.
func (m *DefaultManager) Resolve(platformName, input string) (Link, error) {
	resolver := m.Get(platformName)
	if resolver == nil {
		return Link{}, NewUnknownPlatformError(platformName, input)
	}
	name := resolver.Name()
	if strings.TrimSpace(input) == "" {
		return Link{}, NewEmptyInputError(name, input)
	}
	link, ok := resolver.Resolve(input)
	if !ok {
		return Link{}, NewUnrecognizedError(name, input)
	}
	return link, nil
}

// Detect tries every detectable platform in registration order and returns
// the first link that matches. Generic platforms never take part.
func (m *DefaultManager) Detect(input string) (Link, error) {
	if strings.TrimSpace(input) == "" {
		return Link{}, NewEmptyInputError("", input)
	}

	m.mu.RLock()
	detectable := make(map[string]bool, len(m.meta))
	for name, meta := range m.meta {
		detectable[name] = meta.Detectable
	}
	m.mu.RUnlock()

	var link Link
	_, ok := m.registry.First(func(r Resolver) bool {
		if !detectable[r.Name()] {
			return false
		}
		resolved, matched := r.Resolve(input)
		if matched {
			link = resolved
		}
		return matched
	})
	if !ok {
		return Link{}, NewUnrecognizedError("", input)
	}
	return link, nil
}

// DetectText extracts every recognizable link from free text, in order of
// appearance and without duplicates.
func (m *DefaultManager) DetectText(text string) []Link {
	seen := make(map[string]struct{})
	var links []Link
	for _, candidate := range Candidates(text) {
		link, err := m.Detect(candidate)
		if err != nil {
			continue
		}
		if _, dup := seen[link.Key()]; dup {
			continue
		}
		seen[link.Key()] = struct{}{}
		links = append(links, link)
	}
	return links
}

// ResolveAlias resolves a platform alias to its canonical platform name.
func (m *DefaultManager) ResolveAlias(alias string) (string, bool) {
	if m == nil {
		return "", false
	}
	key := normalizeAlias(alias)
	if key == "" {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.meta[key]; ok {
		return key, true
	}
	if name, ok := m.aliases[key]; ok {
		return name, true
	}
	return "", false
}

// Meta returns metadata for a platform name.
func (m *DefaultManager) Meta(name string) (Meta, bool) {
	if m == nil {
		return Meta{}, false
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Meta{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	meta, ok := m.meta[trimmed]
	if !ok {
		return Meta{Name: trimmed, DisplayName: trimmed}, false
	}
	return meta, true
}

// ListMeta returns metadata for all registered platforms.
func (m *DefaultManager) ListMeta() []Meta {
	if m == nil {
		return nil
	}
	names := m.List()
	metas := make([]Meta, 0, len(names))
	for _, name := range names {
		meta, _ := m.Meta(name)
		metas = append(metas, meta)
	}
	return metas
}

// indexAliases must be called with m.mu held.
func (m *DefaultManager) indexAliases(meta Meta) {
	for _, alias := range meta.Aliases {
		key := normalizeAlias(alias)
		if key == "" || key == meta.Name {
			continue
		}
		// First registration wins an alias.
		if _, ok := m.aliases[key]; ok {
			continue
		}
		m.aliases[key] = meta.Name
	}
}

func buildMeta(resolver Resolver, name string) Meta {
	meta := Meta{}
	if provider, ok := resolver.(MetadataProvider); ok {
		meta = provider.Metadata()
	}
	meta.Name = name
	if meta.DisplayName == "" {
		meta.DisplayName = meta.Name
	}
	return meta
}
