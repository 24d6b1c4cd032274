// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/alsctl/alsctl/internal/config"
	"github.com/alsctl/alsctl/internal/parser"
)

// Flags hold parse state, so each command gets its own instances.

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the row schema",
		HideDefault: true,
	}
}

func newTreeFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tree",
		Usage:       "show the rack branch tree instead of a table",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by the row-producing commands.
// params[0] is the command namespace and params[1] the config file. When
// both are given, output, sort and padding can default from the config file
// as <ns>.<flag> or <flag>.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	sort := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of attributes to sort the results by",
	}
	padding := &cli.IntFlag{
		Name:  "padding",
		Usage: "spaces between text columns",
		Value: 2,
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}

	if len(params) == 2 {
		NameSpacedValueChainFromConfigFile(params[0], params[1], output.Name, &output.Sources)
		NameSpacedValueChainFromConfigFile(params[0], params[1], sort.Name, &sort.Sources)
		NameSpacedValueChainFromConfigFile(params[0], params[1], padding.Name, &padding.Sources)
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		output,
		padding,
		sort,
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewParseFlags returns the flags that tune the Live Set parser. Their
// defaults come from the parser.* config keys.
func NewParseFlags(params ...string) []cli.Flag {
	gate, _ := config.GetString("parser.gate", parser.GateStrict.String())
	limit, _ := config.GetInt("parser.max_anomalies", parser.DefaultMaxAnomalies)
	strict, _ := config.GetBool("parser.strict", false)

	gateFlag := &cli.StringFlag{
		Name:  "gate",
		Usage: "name gate policy: strict or permissive",
		Value: gate,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ALSCTL_GATE"),
		),
		Validator: func(value string) error {
			return FlagValidators(value, GateValidator)
		},
	}
	if len(params) == 2 {
		NameSpacedValueChainFromConfigFile(params[0], params[1], gateFlag.Name, &gateFlag.Sources)
	}

	return []cli.Flag{
		gateFlag,
		&cli.IntFlag{
			Name:  "max-anomalies",
			Usage: "anomalies tolerated before the parse fails, 0 for no limit",
			Value: limit,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail when the parser reports any anomaly",
			Value: strict,
		},
	}
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources for name to the given Sources chain.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain *cli.ValueSourceChain) {
	if path == "" {
		return
	}
	src := yaml.YAML(ns+"."+name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)

	src = yaml.YAML(name, altsrc.StringSourcer(path))
	chain.Chain = append(chain.Chain, src)
}
