package whatsapp

import (
	"strings"

	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
)

const platformName = "whatsapp"

// Platform adapts Resolve to platform.Resolver.
type Platform struct {
	aliases []string
}

// NewPlatform creates the group invite platform.
func NewPlatform(extraAliases ...string) *Platform {
	aliases := []string{"wa", "whatsapp-group", "chat.whatsapp.com"}
	return &Platform{aliases: append(aliases, extraAliases...)}
}

// Name implements platform.Resolver.
func (p *Platform) Name() string {
	return platformName
}

// Resolve implements platform.Resolver.
func (p *Platform) Resolve(input string) (platform.Link, bool) {
	link, ok := Resolve(input)
	if !ok {
		return platform.Link{}, false
	}
	return platform.Link{
		Platform: platformName,
		Kind:     platform.KindInvite,
		ID:       strings.TrimPrefix(link, "https://"+Host+"/"),
		URL:      link,
	}, true
}

// Metadata implements platform.MetadataProvider.
func (p *Platform) Metadata() platform.Meta {
	return platform.Meta{
		Name:        platformName,
		DisplayName: "WhatsApp Group",
		Aliases:     p.aliases,
		Detectable:  true,
	}
}
