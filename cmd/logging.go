package cmd

import (
	"github.com/spaghettifunk/anima/engine/assimp"
	"github.com/spaghettifunk/anima/engine/config"
	"github.com/spaghettifunk/anima/engine/core"
	"github.com/urfave/cli"
)

// loadConfig reads --config, or the default location when the flag is not
// set, and applies the global command line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := ctx.GlobalString("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	if flags := ctx.GlobalStringSlice("flags"); len(flags) > 0 {
		cfg.Import.Flags = flags
	}
	if logFile := ctx.GlobalString("log-file"); logFile != "" {
		cfg.Log.Streams = append(cfg.Log.Streams, "file:"+logFile)
	}
	if ctx.GlobalBool("v") {
		cfg.Log.Level = "debug"
	}
	if ctx.GlobalBool("vv") {
		cfg.Log.Level = "debug"
		cfg.Log.Verbose = true
		cfg.Log.Streams = append(cfg.Log.Streams, "logger")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging applies the configured logging and returns a function that
// detaches the native log streams again.
func setupLogging(cfg *config.Config) (func(), error) {
	if err := cfg.ApplyLogging(); err != nil {
		assimp.DetachAllLogStreams()
		return nil, err
	}
	core.LogDebug("native log streams: %v", assimp.AttachedLogStreams())
	return assimp.DetachAllLogStreams, nil
}

// setup is shared by every command that imports files.
func setup(ctx *cli.Context) (*assimp.Importer, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	teardown, err := setupLogging(cfg)
	if err != nil {
		return nil, nil, err
	}
	imp, err := cfg.NewImporter()
	if err != nil {
		teardown()
		return nil, nil, err
	}
	return imp, func() {
		imp.Close()
		teardown()
	}, nil
}
