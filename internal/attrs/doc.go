// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package attrs parses --attrs column specs. Each spec is key[:title[:transform]]
// where key is a dot path into the row, title is the output column name and
// transform is any mix of u/l (case), t/T (local time or time ago) and a
// length (N truncates, -N elides the middle). A leading ! hides the column
// while keeping it available to --filter and --sort, and *::spec applies a
// transform to every column.
package attrs
