package generic

import (
	"strings"

	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
)

// Platform accepts any URL for a platform without a link grammar.
// It never takes part in detection.
type Platform struct {
	name        string
	displayName string
}

// NewPlatform creates a generic platform registered under name.
func NewPlatform(name, displayName string) *Platform {
	name = platform.NormalizeAliasToken(name)
	if strings.TrimSpace(displayName) == "" {
		displayName = name
	}
	return &Platform{name: name, displayName: displayName}
}

// Name implements platform.Resolver.
func (p *Platform) Name() string {
	return p.name
}

// Resolve implements platform.Resolver.
func (p *Platform) Resolve(input string) (platform.Link, bool) {
	normalized := Normalize(input)
	if normalized == "" {
		return platform.Link{}, false
	}
	return platform.Link{Platform: p.name, Kind: platform.KindURL, URL: normalized}, true
}

// Metadata implements platform.MetadataProvider.
func (p *Platform) Metadata() platform.Meta {
	return platform.Meta{
		Name:        p.name,
		DisplayName: p.displayName,
	}
}
