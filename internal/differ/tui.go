// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/alsctl/alsctl/internal/snapshot"
)

// SelectVersions shows the stored snapshots and lets the user mark two of
// them. It returns nil if the user quits without confirming a pair. The
// result keeps list order, so the first element is the more recent one.
func SelectVersions(items []*snapshot.Version) []*snapshot.Version {
	p := tea.NewProgram(picker{items: items})
	m, err := p.Run()
	if err != nil {
		return nil
	}
	return m.(picker).ordered()
}

type picker struct {
	items    []*snapshot.Version
	cursor   int
	selected []*snapshot.Version
	done     bool
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.items) == 0 {
			break
		}
		m.selected = m.toggle(m.items[m.cursor])
	case "enter":
		if len(m.selected) == 2 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// toggle returns a new selection with v added or removed. At most two
// versions can be marked.
func (m picker) toggle(v *snapshot.Version) []*snapshot.Version {
	out := make([]*snapshot.Version, 0, 2)
	removed := false
	for _, s := range m.selected {
		if s == v {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed && len(out) < 2 {
		out = append(out, v)
	}
	return out
}

func (m picker) isSelected(v *snapshot.Version) bool {
	for _, s := range m.selected {
		if s == v {
			return true
		}
	}
	return false
}

// ordered returns the confirmed pair in list order.
func (m picker) ordered() []*snapshot.Version {
	if !m.done || len(m.selected) != 2 {
		return nil
	}
	var out []*snapshot.Version
	for _, v := range m.items {
		if m.isSelected(v) {
			out = append(out, v)
		}
	}
	return out
}

func (m picker) View() string {
	var b strings.Builder
	b.WriteString("Select two snapshots (space to mark, enter to diff, q to quit):\n\n")
	for i, v := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if m.isSelected(v) {
			mark = "x"
		}
		fmt.Fprintf(&b, "%s [%s] %4d %-20s %s\n",
			cursor, mark, v.Serial, v.CreatedAt.Format("2006-01-02T15:04:05"), humanize.Time(v.CreatedAt))
	}
	return b.String()
}
