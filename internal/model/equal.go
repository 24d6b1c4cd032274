// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

// Equal reports structural equality of two projects, tracks in order.
func (p *Project) Equal(o *Project) bool {
	if p == nil || o == nil {
		return p == o
	}
	if len(p.Tracks) != len(o.Tracks) {
		return false
	}
	for i := range p.Tracks {
		if !p.Tracks[i].Equal(&o.Tracks[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality, including nested branches.
func (t *Track) Equal(o *Track) bool {
	return t.Type == o.Type &&
		t.ID == o.ID &&
		t.EffectiveName == o.EffectiveName &&
		NamesEqual(t.UserName, o.UserName) &&
		BranchesEqual(t.Branches, o.Branches)
}

// Equal reports structural equality, including nested branches.
func (b *Branch) Equal(o *Branch) bool {
	return b.Type == o.Type &&
		b.EffectiveName == o.EffectiveName &&
		NamesEqual(b.UserName, o.UserName) &&
		BranchesEqual(b.Branches, o.Branches)
}

// BranchesEqual compares two optional branch lists. A nil list only equals
// another nil list; an empty group is not the same as no group.
func BranchesEqual(a, b []Branch) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// NamesEqual reports whether two optional names are both unset or hold the
// same value.
func NamesEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
