// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/alsctl/alsctl/internal/model"
)

// emptyGroup labels a branch group that is present but has no branches.
const emptyGroup = "(empty)"

// Tree renders the project as a tree of tracks and their nested branches.
func Tree(p *model.Project, title string, color bool) string {
	root := tree.Root(title).Enumerator(tree.RoundedEnumerator)
	if color {
		root = root.
			RootStyle(lipgloss.NewStyle().Bold(true)).
			EnumeratorStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			ItemStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("12")))
	}

	for i := range p.Tracks {
		t := &p.Tracks[i]
		label := fmt.Sprintf("%s %s [%s]", t.ID, t.DisplayName(), t.Type)
		root.Child(node(label, t.Branches))
	}
	return root.String()
}

// node returns a leaf label when there is no branch group, else a subtree.
func node(label string, branches model.BranchList) any {
	if branches == nil {
		return label
	}
	sub := tree.Root(label)
	if len(branches) == 0 {
		sub.Child(emptyGroup)
		return sub
	}
	for i := range branches {
		b := &branches[i]
		sub.Child(node(fmt.Sprintf("%s [%s]", b.DisplayName(), b.Type), b.Branches))
	}
	return sub
}
