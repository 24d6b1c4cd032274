// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v2"

	"github.com/alsctl/alsctl/internal/differ"
	"github.com/alsctl/alsctl/internal/model"
)

// NoChanges is printed in text mode when the diff is empty.
const NoChanges = "No changes."

// ChangeReport is the json/yaml document emitted by diff. Project is the
// newer side.
type ChangeReport struct {
	Summary string          `json:"summary" yaml:"summary"`
	Changes []differ.Change `json:"changes" yaml:"changes"`
	Project *model.Project  `json:"project,omitempty" yaml:"project,omitempty"`
}

// Changes renders a diff in the given format. Text output is one line per
// change, colored by kind when color is set.
func Changes(w io.Writer, changes []differ.Change, project *model.Project, format string, color bool) error {
	switch format {
	case FormatJSON, FormatRaw:
		report := newReport(changes, project)
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal changes: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(newReport(changes, project))
		if err != nil {
			return fmt.Errorf("failed to marshal changes: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, NoChanges)
		return err
	}
	for _, c := range changes {
		line := c.String()
		if color {
			line = lipgloss.NewStyle().Foreground(changeColor(string(c.Kind))).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func newReport(changes []differ.Change, project *model.Project) ChangeReport {
	if changes == nil {
		changes = []differ.Change{}
	}
	return ChangeReport{
		Summary: differ.Summary(changes),
		Changes: changes,
		Project: project,
	}
}
