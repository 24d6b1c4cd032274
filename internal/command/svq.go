// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/output"
	"github.com/alsctl/alsctl/internal/snapshot"
)

// svqDefaultAttrs specifies the default attributes displayed for snapshot
// versions in the "svq" command output.
var svqDefaultAttrs = []string{"serial", "id", "created", "tracks"}

// svqCommandAction is the action handler for the "svq" subcommand. It lists
// the stored snapshot versions of the input, most recent first.
func svqCommandAction(ctx context.Context, cmd *cli.Command) error {
	return NewQueryActionRunner(
		"svq",
		reflect.TypeOf(output.VersionRow{}),
		svqDefaultAttrs,
		svqFetch,
	).Run(ctx, cmd)
}

func svqFetch(_ context.Context, cmd *cli.Command) ([]byte, error) {
	m := GetMeta(cmd)
	if !m.HasInput() {
		return nil, fmt.Errorf("missing input: %s", cmd.UsageText)
	}

	versions, err := snapshot.NewStore().Versions(m.Input.Path)
	if err != nil {
		return nil, err
	}
	if m.Input.Version != "" {
		if versions, err = snapshot.Resolve(versions, m.Input.Version); err != nil {
			return nil, err
		}
	}

	if limit := cmd.Int("limit"); limit > 0 && len(versions) > limit {
		versions = versions[:limit]
	}
	log.Debugf("svq: source=%s versions=%d", m.Input.Path, len(versions))
	return output.VersionRows(versions)
}

// svqCommandBuilder constructs the cli.Command for "svq", wiring metadata,
// flags, and action handlers.
func svqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "svq",
		Usage:     "snapshot version query",
		UsageText: "alsctl svq FILE[::version] [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "limit snapshot versions returned",
				Value:   99999,
			},
		},
		Action: svqCommandAction,
		Meta:   meta,
	}).Build()
}
