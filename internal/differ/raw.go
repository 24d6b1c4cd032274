// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/alsctl/alsctl/internal/log"
)

// RawDiff renders a structural JSON delta between two serialized projects.
// Unlike Diff it knows nothing about tracks; it shows every changed field,
// including those inside branch lists. The bool reports whether anything
// differs.
func RawDiff(before, after []byte, color bool) (string, bool, error) {
	log.Debugf("raw diff: len=%d %d", len(before), len(after))

	delta, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return "", false, fmt.Errorf("failed to compare projects: %w", err)
	}
	if !delta.Modified() {
		return "", false, nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(before, &left); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	out, err := f.Format(delta)
	if err != nil {
		return "", true, err
	}
	return out, true, nil
}
