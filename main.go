// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alsctl/alsctl/internal/command"
	"github.com/alsctl/alsctl/internal/config"
	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/source"
	"github.com/alsctl/alsctl/internal/version"
)

var ctx = context.Background()

// boolFlags never consume the following argument as a value.
var boolFlags = map[string]bool{
	"--color": true, "-c": true,
	"--titles": true, "-t": true,
	"--help": true, "-h": true,
	"--version": true, "-v": true,
	"--raw":    true,
	"--record": true,
	"--schema": true,
	"--strict": true,
	"--tree":   true,
}

// valueFlags always consume the following argument, which may itself begin
// with a dash as in --sort -name.
var valueFlags = map[string]bool{
	"--attrs": true, "-a": true,
	"--filter": true, "-f": true,
	"--limit": true, "-l": true,
	"--output": true, "-o": true,
	"--sort": true, "-s": true,
	"--gate":          true,
	"--max-anomalies": true,
	"--padding":       true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}
	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)
	return deduplicateFlags(args)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an argument set from the config. An explicit @name
// argument is replaced by <cmd>.<name>. Without one, <cmd>.defaults is
// inserted after the input so that later command-line flags win.
func processSetOnly(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	idx := 2
	if len(args) > 2 && !strings.HasPrefix(args[2], "@") &&
		(args[2] == source.Stdin || !strings.HasPrefix(args[2], "-")) {
		idx = 3
	}

	set := "defaults"
	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set = args[i][1:]
			args = append(args[:i:i], args[i+1:]...)
			idx = i
			break
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, idx)
}

// injectConfigSet splits each entry on whitespace and inserts the fields at
// insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag, with its
// value, so that a flag given on the command line overrides one from a
// config set. Positional arguments keep their place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type unit struct {
		key    string
		tokens []string
	}

	var units []unit
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == source.Stdin || !strings.HasPrefix(a, "-") {
			units = append(units, unit{tokens: []string{a}})
			continue
		}

		key, _, hasValue := strings.Cut(a, "=")
		u := unit{key: key, tokens: []string{a}}
		takesValue := valueFlags[key] ||
			(!boolFlags[key] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-"))
		if !hasValue && takesValue && i+1 < len(args) {
			u.tokens = append(u.tokens, args[i+1])
			i++
		}
		units = append(units, u)
	}

	last := make(map[string]int, len(units))
	for i, u := range units {
		if u.key != "" {
			last[u.key] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.key != "" && last[u.key] != i {
			continue
		}
		out = append(out, u.tokens...)
	}
	return out
}
