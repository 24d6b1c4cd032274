// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"strings"
)

// GatePolicy decides when EffectiveName/UserName values are applied.
type GatePolicy int

const (
	// GateStrict applies name values only inside a <Name> block. Devices carry
	// their own UserName tags outside of <Name>, and those must not leak onto
	// the enclosing track or branch.
	GateStrict GatePolicy = iota
	// GatePermissive applies name values wherever they appear.
	GatePermissive
)

func (g GatePolicy) String() string {
	if g == GatePermissive {
		return "permissive"
	}
	return "strict"
}

// ParseGatePolicy maps "strict" or "permissive" (case-insensitive) to a
// GatePolicy. An empty string selects GateStrict.
func ParseGatePolicy(s string) (GatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return GateStrict, nil
	case "permissive":
		return GatePermissive, nil
	}
	return GateStrict, fmt.Errorf("unknown gate policy %q: must be one of [strict permissive]", s)
}

// DefaultMaxAnomalies is the anomaly ceiling used when none is configured.
const DefaultMaxAnomalies = 64

type options struct {
	gate         GatePolicy
	maxAnomalies int
}

// Option customizes a Builder.
type Option func(*options)

// WithGate sets the name-block gate policy. Default is GateStrict.
func WithGate(g GatePolicy) Option {
	return func(o *options) { o.gate = g }
}

// WithMaxAnomalies sets how many anomalies are tolerated before the parse
// fails with ErrMalformed. Zero disables the ceiling. Negative values are
// ignored.
func WithMaxAnomalies(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxAnomalies = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{gate: GateStrict, maxAnomalies: DefaultMaxAnomalies}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
