// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/cacheutil"
	"github.com/alsctl/alsctl/internal/config"
	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/source"
)

// inputCommands take the primary input as their first positional argument.
var inputCommands = map[string]bool{
	"diff": true,
	"snap": true,
	"svq":  true,
	"tq":   true,
}

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the alsctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
		cfg = config.Type{Data: map[string]interface{}{}}
		config.Config = cfg
	}
	config.SetNamespace(ns)
	cfg.Namespace = ns

	// Only the s3 object cache ages out. Snapshot history is kept.
	if hours, _ := config.GetInt("cache.clean_hours", 0); hours > 0 {
		if err := cacheutil.Purge(hours, "s3"); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// The arg immediately following an input-taking command is the input
	// spec unless it is a flag. A lone "-" is stdin.
	if inputCommands[ns] && len(args) > 2 &&
		(args[2] == source.Stdin || !strings.HasPrefix(args[2], "-")) {
		spec, err := source.ParseSpec(args[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse input (%s): %w", args[2], err)
		}
		m.Input = spec
	}

	app := &cli.Command{
		Name:  "alsctl",
		Usage: "Ableton Live Set control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "alsctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(m),
		snapCommandBuilder(m),
		svqCommandBuilder(m),
		tqCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
