// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package parser rebuilds a model.Project from a flat stream of markup
// events in a single pass. Nesting of device branches is reconstructed with an
// explicit stack of in-progress sibling lists, so depth is bounded by memory
// rather than by recursion.
//
// Structural problems in the document (missing ids, unmatched closes, names
// with nothing to attach to) are recorded as anomalies in a Report instead of
// aborting the parse. Too many anomalies escalate to ErrMalformed.
package parser
