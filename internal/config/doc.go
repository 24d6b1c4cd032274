// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional alsctl.yaml file and offers typed
// getters over dotted keys such as "parser.gate" or "colors.title". A
// missing file is not an error for callers that pass defaults.
package config
