// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns projects, snapshot histories and diffs into rows and
// renders them as text tables, trees, JSON or YAML.
package output
