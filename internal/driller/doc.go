// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller walks JSON rows with a dot path so that --attrs, --filter
// and --sort can reach into nested values such as a track's branch list.
package driller
