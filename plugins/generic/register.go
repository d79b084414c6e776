package generic

import (
	"fmt"

	"github.com/yogansh2008/AutoAttendDevArc/attend/config"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
	platformplugins "github.com/yogansh2008/AutoAttendDevArc/attend/platform/plugins"
)

const pluginName = "generic"

// DefaultPlatforms are registered when the plugin config names none.
var DefaultPlatforms = []string{"zoom", "teams", "webex", "other"}

var displayNames = map[string]string{
	"zoom":  "Zoom",
	"teams": "Microsoft Teams",
	"webex": "Webex",
	"other": "Other",
}

func init() {
	if err := platformplugins.Register(pluginName, buildContribution); err != nil {
		panic(err)
	}
}

func buildContribution(cfg *config.Config, logger *logpkg.Logger) (*platformplugins.Contribution, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	names := cfg.GetPluginStrings(pluginName, "platforms")
	if len(names) == 0 {
		names = DefaultPlatforms
	}

	resolvers := make([]platform.Resolver, 0, len(names))
	for _, name := range names {
		p := NewPlatform(name, displayNames[platform.NormalizeAliasToken(name)])
		if p.Name() == "" {
			continue
		}
		resolvers = append(resolvers, p)
	}
	logger.Debug("plugin ready", "plugin", pluginName, "platforms", names)
	return &platformplugins.Contribution{
		Platforms: resolvers,
		Priority:  100,
	}, nil
}
