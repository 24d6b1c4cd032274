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

	"github.com/alsctl/alsctl/internal/attrs"
	"github.com/alsctl/alsctl/internal/aws"
	"github.com/alsctl/alsctl/internal/config"
	"github.com/alsctl/alsctl/internal/liveset"
	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/meta"
	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/output"
	"github.com/alsctl/alsctl/internal/parser"
	"github.com/alsctl/alsctl/internal/snapshot"
	"github.com/alsctl/alsctl/internal/source"
)

// ErrAnomalies is returned under --strict when a parse reports anomalies.
var ErrAnomalies = errors.New("live set has anomalies")

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	al := attrs.Defaults(defaults...)
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// DumpSchemaIfRequested writes the row keys of t when --schema is set, and
// returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(t, Stdout(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Stdout is the root command's writer, os.Stdout unless a caller replaced it.
func Stdout(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}

// ParserOptions turns --gate and --max-anomalies into parser options.
func ParserOptions(cmd *cli.Command) ([]parser.Option, error) {
	gate, err := parser.ParseGatePolicy(cmd.String("gate"))
	if err != nil {
		return nil, err
	}
	return []parser.Option{
		parser.WithGate(gate),
		parser.WithMaxAnomalies(cmd.Int("max-anomalies")),
	}, nil
}

// NewOpener returns a source.Opener configured from the aws.* config keys.
func NewOpener(cmd *cli.Command) *source.Opener {
	var opts []aws.Option
	if region, _ := config.GetString("aws.region"); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}
	if profile, _ := config.GetString("aws.profile"); profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if endpoint, _ := config.GetString("aws.endpoint"); endpoint != "" {
		opts = append(opts, aws.WithEndpoint(endpoint))
	}

	o := &source.Opener{AWSOptions: opts}
	if r := cmd.Root().Reader; r != nil && r != os.Stdin {
		o.Stdin = r
	}
	return o
}

// LoadProject builds the project named by spec. A ::version suffix reads
// from the snapshot store, .json/.yaml files load as snapshots and anything
// else parses as a Live Set.
func LoadProject(ctx context.Context, cmd *cli.Command, o *source.Opener, spec source.Spec) (*model.Project, error) {
	if spec.Version != "" {
		store := snapshot.NewStore()
		versions, err := store.Versions(spec.Path)
		if err != nil {
			return nil, err
		}
		selected, err := snapshot.Resolve(versions, spec.Version)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec, err)
		}
		log.Debugf("resolved %s to serial %d", spec, selected[0].Serial)
		return store.Read(selected[0])
	}

	if source.Classify(spec.Path) == source.Snapshot {
		data, err := o.ReadAll(ctx, spec.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", spec.Path, err)
		}
		e, err := snapshot.Load(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Path, err)
		}
		return e.Project, nil
	}

	opts, err := ParserOptions(cmd)
	if err != nil {
		return nil, err
	}
	p, report, err := liveset.LoadFile(ctx, o, spec.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Path, err)
	}
	if err := CheckReport(cmd, spec.Path, report); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckReport logs anomalies and, under --strict, turns them into an error.
func CheckReport(cmd *cli.Command, path string, report parser.Report) error {
	log.Debugf("parsed %s: events=%d tracks=%d branches=%d", path, report.Events, report.Tracks, report.Branches)
	if report.Clean() {
		return nil
	}
	for _, a := range report.Anomalies {
		log.Warnf("%s: %s", path, a)
	}
	if cmd.Bool("strict") {
		return fmt.Errorf("%s: %s: %w", path, report, ErrAnomalies)
	}
	return nil
}

// EmitRows passes JSON rows to the common output routine.
func EmitRows(raw []byte, al attrs.AttrList, cmd *cli.Command) error {
	return output.SliceDiceSpit(raw, al, cmd, Stdout(cmd), nil)
}
