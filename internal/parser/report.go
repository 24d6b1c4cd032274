// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMalformed is returned when a document carries more anomalies than the
	// builder is allowed to absorb.
	ErrMalformed = errors.New("malformed live set")

	// ErrTruncated is returned when the stream ends with a track or branch
	// group still open. The partial project is returned alongside it.
	ErrTruncated = errors.New("truncated live set")
)

// AnomalyKind classifies a recoverable structural problem.
type AnomalyKind string

const (
	AnomalyMissingID      AnomalyKind = "missing-id"
	AnomalyNestedTrack    AnomalyKind = "nested-track"
	AnomalyOrphanBranch   AnomalyKind = "orphan-branch"
	AnomalyOrphanGroup    AnomalyKind = "orphan-group"
	AnomalyOrphanName     AnomalyKind = "orphan-name"
	AnomalyMissingValue   AnomalyKind = "missing-value"
	AnomalyUnmatchedClose AnomalyKind = "unmatched-close"
)

// Anomaly is one skipped or degraded event.
type Anomaly struct {
	Kind   AnomalyKind
	Event  int
	Name   string
	Detail string
}

func (a Anomaly) String() string {
	s := fmt.Sprintf("event %d <%s>: %s", a.Event, a.Name, a.Kind)
	if a.Detail != "" {
		s += " (" + a.Detail + ")"
	}
	return s
}

// Report summarizes a parse.
type Report struct {
	Events    int
	Tracks    int
	Branches  int
	Anomalies []Anomaly
}

// Clean reports whether the parse saw no anomalies.
func (r Report) Clean() bool {
	return len(r.Anomalies) == 0
}

// Counts tallies anomalies by kind.
func (r Report) Counts() map[AnomalyKind]int {
	counts := make(map[AnomalyKind]int)
	for _, a := range r.Anomalies {
		counts[a.Kind]++
	}
	return counts
}

// String renders a one-line summary, e.g. "2 anomalies: missing-id=1 orphan-name=1".
func (r Report) String() string {
	if r.Clean() {
		return "no anomalies"
	}
	counts := r.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[AnomalyKind(k)]))
	}
	noun := "anomalies"
	if len(r.Anomalies) == 1 {
		noun = "anomaly"
	}
	return fmt.Sprintf("%d %s: %s", len(r.Anomalies), noun, strings.Join(parts, " "))
}
