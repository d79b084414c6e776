package meet

import "github.com/yogansh2008/AutoAttendDevArc/attend/platform"

const platformName = "meet"

// Platform adapts Resolve to platform.Resolver.
type Platform struct {
	aliases []string
}

// NewPlatform creates the meeting-code platform. Extra aliases are added
// to the built-in ones.
func NewPlatform(extraAliases ...string) *Platform {
	aliases := []string{"gmeet", "google-meet", "googlemeet", "google"}
	return &Platform{aliases: append(aliases, extraAliases...)}
}

// Name implements platform.Resolver.
func (p *Platform) Name() string {
	return platformName
}

// Resolve implements platform.Resolver.
func (p *Platform) Resolve(input string) (platform.Link, bool) {
	ref, ok := Resolve(input)
	if !ok {
		return platform.Link{}, false
	}
	return toLink(ref), true
}

// Metadata implements platform.MetadataProvider.
func (p *Platform) Metadata() platform.Meta {
	return platform.Meta{
		Name:        platformName,
		DisplayName: "Google Meet",
		Aliases:     p.aliases,
		Detectable:  true,
	}
}

func toLink(ref Reference) platform.Link {
	link := platform.Link{Platform: platformName, URL: ref.CanonicalURL()}
	switch r := ref.(type) {
	case Code:
		link.Kind = platform.KindCode
		link.ID = r.Code
	case Lookup:
		link.Kind = platform.KindLookup
		link.ID = r.Token
	case Path:
		link.Kind = platform.KindPath
		link.ID = r.Path
	}
	return link
}
