// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/log"
)

// QueryActionRunner encapsulates the common query action pattern for the
// row-producing subcommands. It handles the schema short-circuit, attribute
// building and output emission, with row production provided by FetchFn.
type QueryActionRunner struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	// FetchFn returns the rows as a JSON array.
	FetchFn func(context.Context, *cli.Command) ([]byte, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs.String())

	raw, err := qar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	return EmitRows(raw, attrs, cmd)
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration.
func NewQueryActionRunner(
	commandName string,
	schemaType reflect.Type,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]byte, error),
) *QueryActionRunner {
	return &QueryActionRunner{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
