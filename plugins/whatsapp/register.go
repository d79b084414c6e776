package whatsapp

import (
	"fmt"

	"github.com/yogansh2008/AutoAttendDevArc/attend/config"
	logpkg "github.com/yogansh2008/AutoAttendDevArc/attend/logger"
	"github.com/yogansh2008/AutoAttendDevArc/attend/platform"
	platformplugins "github.com/yogansh2008/AutoAttendDevArc/attend/platform/plugins"
)

func init() {
	if err := platformplugins.Register(platformName, buildContribution); err != nil {
		panic(err)
	}
}

func buildContribution(cfg *config.Config, logger *logpkg.Logger) (*platformplugins.Contribution, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	p := NewPlatform(cfg.GetPluginStrings(platformName, "aliases")...)
	logger.Debug("plugin ready", "plugin", platformName, "aliases", p.aliases)
	return &platformplugins.Contribution{
		Platforms: []platform.Resolver{p},
		Priority:  20,
	}, nil
}
