// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/output"
	"github.com/alsctl/alsctl/internal/parser"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects flag combinations that the commands cannot
// honor together.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("tree") && c.String("output") != output.FormatText {
		return fmt.Errorf("--tree only supports text output")
	}
	if c.Bool("raw") && c.Bool("schema") {
		return fmt.Errorf("--raw and --schema cannot be combined")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{
		output.FormatText, output.FormatJSON, output.FormatRaw, output.FormatYAML,
	}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func GateValidator(value any) error {
	s, _ := value.(string)
	_, err := parser.ParseGatePolicy(s)
	return err
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
