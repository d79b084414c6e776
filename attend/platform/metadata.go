package platform

import "strings"

// Meta describes optional platform metadata used for display and alias resolution.
type Meta struct {
	Name        string
	DisplayName string
	Aliases     []string
	// Detectable marks platforms with a structured grammar that can take
	// part in auto-detection. Generic platforms accept any URL and must not.
	Detectable bool
}

// MetadataProvider can be implemented by resolvers to expose metadata.
type MetadataProvider interface {
	Metadata() Meta
}

// normalizeAlias prepares an alias token for lookup.
func normalizeAlias(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

// NormalizeAliasToken exposes alias normalization for callers.
func NormalizeAliasToken(alias string) string {
	return normalizeAlias(alias)
}
