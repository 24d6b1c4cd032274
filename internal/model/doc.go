// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package model holds the in-memory representation of a parsed Live Set:
// a Project made of Tracks, each optionally owning a tree of device Branches.
// Field names on the wire match the snapshot format written by earlier
// releases so old snapshots keep loading.
package model
