// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/alsctl/alsctl/internal/differ"
	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/output"
	"github.com/alsctl/alsctl/internal/snapshot"
	"github.com/alsctl/alsctl/internal/source"
)

// pickArg as the second argument opens the snapshot picker.
const pickArg = "+"

// selectVersions is swapped out in tests.
var selectVersions = differ.SelectVersions

// diffCommandAction is the action handler for the "diff" subcommand. With
// two inputs it compares them. With one Live Set it compares the stored
// version (latest, or the ::version given) against the file as it is now.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("expected one or two inputs: %s", cmd.UsageText)
	}
	store := snapshot.NewStore()

	var before, after *model.Project
	if len(args) == 2 && args[1] == pickArg {
		pair, err := pickPair(store, args[0])
		if err != nil || pair == nil {
			return err
		}
		// The picker keeps list order, newest first.
		if before, after, err = loadPair(ctx,
			func(context.Context) (*model.Project, error) { return store.Read(pair[1]) },
			func(context.Context) (*model.Project, error) { return store.Read(pair[0]) },
		); err != nil {
			return err
		}
		return emitDiff(cmd, before, after)
	}

	oldSpec, newSpec, err := diffSpecs(store, args)
	if err != nil {
		return err
	}
	log.Debugf("diff: old=%s new=%s", oldSpec, newSpec)

	// Each side gets its own opener so lazily built clients are not shared.
	if before, after, err = loadPair(ctx,
		func(ctx context.Context) (*model.Project, error) {
			return LoadProject(ctx, cmd, NewOpener(cmd), oldSpec)
		},
		func(ctx context.Context) (*model.Project, error) {
			return LoadProject(ctx, cmd, NewOpener(cmd), newSpec)
		},
	); err != nil {
		return err
	}

	if err := emitDiff(cmd, before, after); err != nil {
		return err
	}

	if cmd.Bool("record") {
		return recordSide(store, newSpec, after)
	}
	return nil
}

// diffSpecs turns the arguments into the old and new sides.
func diffSpecs(store *snapshot.Store, args []string) (oldSpec, newSpec source.Spec, err error) {
	if len(args) == 2 {
		if args[0] == source.Stdin && args[1] == source.Stdin {
			return oldSpec, newSpec, fmt.Errorf("only one side can read stdin")
		}
		if oldSpec, err = source.ParseSpec(args[0]); err != nil {
			return oldSpec, newSpec, fmt.Errorf("invalid input %q: %w", args[0], err)
		}
		if newSpec, err = source.ParseSpec(args[1]); err != nil {
			return oldSpec, newSpec, fmt.Errorf("invalid input %q: %w", args[1], err)
		}
		return oldSpec, newSpec, nil
	}

	spec, err := source.ParseSpec(args[0])
	if err != nil {
		return oldSpec, newSpec, fmt.Errorf("invalid input %q: %w", args[0], err)
	}
	if spec.Path == source.Stdin || source.Classify(spec.Path) == source.Snapshot {
		return oldSpec, newSpec, fmt.Errorf("%s needs a second input to compare against", spec.Path)
	}

	versions, err := store.Versions(spec.Path)
	if err != nil {
		return oldSpec, newSpec, err
	}
	if len(versions) == 0 {
		return oldSpec, newSpec, fmt.Errorf("no stored snapshots for %s, run alsctl snap first", spec.Path)
	}

	oldSpec = source.Spec{Path: spec.Path, Version: spec.Version}
	if oldSpec.Version == "" {
		oldSpec.Version = "~0"
	}
	return oldSpec, source.Spec{Path: spec.Path}, nil
}

// pickPair lets the user choose two stored versions of path. A nil pair
// means the picker was dismissed.
func pickPair(store *snapshot.Store, path string) ([]*snapshot.Version, error) {
	spec, err := source.ParseSpec(path)
	if err != nil {
		return nil, fmt.Errorf("invalid input %q: %w", path, err)
	}
	versions, err := store.Versions(spec.Path)
	if err != nil {
		return nil, err
	}
	if len(versions) < 2 {
		return nil, fmt.Errorf("%s has %d stored snapshots, need at least 2", spec.Path, len(versions))
	}

	pair := selectVersions(versions)
	if len(pair) != 2 {
		log.Debug("picker dismissed")
		return nil, nil
	}
	return pair, nil
}

// loadPair runs both loaders concurrently.
func loadPair(ctx context.Context, oldFn, newFn func(context.Context) (*model.Project, error)) (before, after *model.Project, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		before, err = oldFn(gctx)
		return
	})
	g.Go(func() (err error) {
		after, err = newFn(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

func emitDiff(cmd *cli.Command, before, after *model.Project) error {
	w := Stdout(cmd)
	color := output.ColorEnabled(cmd)

	if cmd.Bool("raw") {
		left, err := json.Marshal(before)
		if err != nil {
			return err
		}
		right, err := json.Marshal(after)
		if err != nil {
			return err
		}
		delta, modified, err := differ.RawDiff(left, right, color)
		if err != nil {
			return err
		}
		if !modified {
			delta = output.NoChanges
		}
		_, err = fmt.Fprintln(w, delta)
		return err
	}

	changes, err := differ.Diff(before, after)
	if err != nil {
		return err
	}
	log.Debugf("diff: changes=%d", len(changes))
	return output.Changes(w, changes, after, cmd.String("output"), color)
}

// recordSide stores the new side when it is a Live Set on disk or in S3.
func recordSide(store *snapshot.Store, spec source.Spec, p *model.Project) error {
	if spec.Version != "" || spec.Path == source.Stdin || source.Classify(spec.Path) == source.Snapshot {
		log.Warnf("--record ignored for %s", spec)
		return nil
	}

	v, recorded, err := store.Record(spec.Path, p)
	if errors.Is(err, snapshot.ErrStoreDisabled) {
		log.Warnf("--record ignored: %v", err)
		return nil
	}
	if err != nil {
		return err
	}
	log.Infof("snapshot %s: serial=%d recorded=%v", spec.Path, v.Serial, recorded)
	return nil
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	cfg := meta.Config.Source

	// Only output and color apply to diff results.
	var flags []cli.Flag
	for _, flag := range NewGlobalFlags("diff", cfg) {
		switch flag.Names()[0] {
		case "output", "color":
			flags = append(flags, flag)
		}
	}
	flags = append(flags, NewParseFlags("diff", cfg)...)

	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two versions of a live set",
		UsageText: "alsctl diff OLD [NEW|+] [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(flags, []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "show the structural JSON delta",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "record the new side in the snapshot store",
				Value: false,
			},
		}...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: diffCommandAction,
	}
}
