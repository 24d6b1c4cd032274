// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the semantic differences between two versions of a
// project: tracks added or removed, renamed, instruments swapped and device
// chains changed. Branches carry no identity, so branch lists are compared as
// opaque aggregates and reported coarsely.
package differ
