// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/alsctl/alsctl/internal/config"
	"github.com/alsctl/alsctl/internal/source"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the primary input spec and the starting
// working directory.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Input is the first positional argument, when the command takes one.
	Input       source.Spec
	StartingDir string
}

// HasInput reports whether a primary input was given on the command line.
func (m Meta) HasInput() bool {
	return m.Input.Path != ""
}
