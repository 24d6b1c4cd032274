// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot persists parsed projects so that later parses can be
// diffed against them. A snapshot file is either a bare project document or
// an Envelope that also records where and when it was taken. The Store keeps
// a numbered history of envelopes per input in the cache directory, and
// Resolve picks versions out of that history the way users name them on the
// command line.
package snapshot
