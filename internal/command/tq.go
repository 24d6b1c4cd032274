// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/output"
)

// tqDefaultAttrs specifies the default attributes displayed for tracks in
// the "tq" command output.
var tqDefaultAttrs = []string{"id", "type", "name", "devices"}

// tqCommandAction is the action handler for the "tq" subcommand. It parses
// the input and lists its tracks as rows, or as a branch tree with --tree.
func tqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("tree") && !cmd.Bool("schema") {
		return tqTree(ctx, cmd)
	}

	return NewQueryActionRunner(
		"tq",
		reflect.TypeOf(output.TrackRow{}),
		tqDefaultAttrs,
		tqFetch,
	).Run(ctx, cmd)
}

func tqFetch(ctx context.Context, cmd *cli.Command) ([]byte, error) {
	m := GetMeta(cmd)
	if !m.HasInput() {
		return nil, fmt.Errorf("missing input: %s", cmd.UsageText)
	}

	p, err := LoadProject(ctx, cmd, NewOpener(cmd), m.Input)
	if err != nil {
		return nil, err
	}

	cmd.Metadata["header"] = fmt.Sprintf("%s: %s", filepath.Base(m.Input.Path),
		english.Plural(len(p.Tracks), "track", ""))
	return output.TrackRows(p)
}

func tqTree(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if !m.HasInput() {
		return fmt.Errorf("missing input: %s", cmd.UsageText)
	}

	p, err := LoadProject(ctx, cmd, NewOpener(cmd), m.Input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(Stdout(cmd), output.Tree(p, m.Input.String(), output.ColorEnabled(cmd)))
	return err
}

// tqCommandBuilder constructs the cli.Command for "tq", wiring metadata,
// flags, and action handlers.
func tqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "tq",
		Usage:     "track query",
		UsageText: "alsctl tq FILE[::version] [options]",
		Flags: []cli.Flag{
			newTreeFlag(),
		},
		Action: tqCommandAction,
		Meta:   meta,
	}).Build()
}
