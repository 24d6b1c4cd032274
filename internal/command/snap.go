// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/output"
	"github.com/alsctl/alsctl/internal/snapshot"
	"github.com/alsctl/alsctl/internal/source"
)

// snapCommandAction is the action handler for the "snap" subcommand. With an
// OUT argument the parsed project is written there ("-" for stdout).
// Otherwise it is recorded as the next version in the snapshot store.
func snapCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if !m.HasInput() {
		return fmt.Errorf("missing input: %s", cmd.UsageText)
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(output.VersionRow{})) {
		return nil
	}

	p, err := LoadProject(ctx, cmd, NewOpener(cmd), m.Input)
	if err != nil {
		return err
	}

	if out := cmd.Args().Get(1); out != "" {
		return snapWrite(cmd, p, out)
	}

	if m.Input.Path == source.Stdin {
		return fmt.Errorf("stdin cannot be recorded, give an OUT file")
	}

	v, recorded, err := snapshot.NewStore().Record(m.Input.Path, p)
	if errors.Is(err, snapshot.ErrStoreDisabled) {
		return fmt.Errorf("%w: unset ALSCTL_CACHE or give an OUT file", err)
	}
	if err != nil {
		return err
	}

	if recorded {
		cmd.Metadata["header"] = "Recorded:"
	} else {
		cmd.Metadata["header"] = "Unchanged, latest is:"
	}
	log.Debugf("snap: source=%s serial=%d recorded=%v", m.Input.Path, v.Serial, recorded)

	attrs, err := BuildAttrs(cmd, svqDefaultAttrs...)
	if err != nil {
		return err
	}
	raw, err := output.VersionRows([]*snapshot.Version{v})
	if err != nil {
		return err
	}
	return EmitRows(raw, attrs, cmd)
}

// snapWrite saves p to out. The format follows the extension, or --output
// when writing to stdout.
func snapWrite(cmd *cli.Command, p *model.Project, out string) error {
	var (
		w      io.Writer
		format snapshot.Format
	)

	if out == source.Stdin {
		w = Stdout(cmd)
		format = snapshot.JSON
		if cmd.String("output") == output.FormatYAML {
			format = snapshot.YAML
		}
	} else {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}
		defer f.Close()
		w = f
		format = snapshot.FormatFor(out)
	}

	if err := snapshot.Save(w, p, format); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Debugf("snap: wrote %s as %s", out, format)
	return nil
}

// snapCommandBuilder constructs the cli.Command for "snap".
func snapCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "snap",
		Usage:     "record a snapshot of a live set",
		UsageText: "alsctl snap FILE [OUT] [options]",
		Action:    snapCommandAction,
		Meta:      meta,
	}).Build()
}
