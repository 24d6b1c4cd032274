// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source resolves input specs into readers. A spec is "-" for stdin,
// an s3://bucket/key URI or a local path, optionally followed by ::version to
// select a stored snapshot of that input.
package source
