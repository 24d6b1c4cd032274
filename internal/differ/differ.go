// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/model"
)

var (
	// ErrDuplicateID is wrapped by DuplicateIDError.
	ErrDuplicateID = errors.New("duplicate track id")
	// ErrNilProject is returned when either side of a diff is missing.
	ErrNilProject = errors.New("nil project")
)

// DuplicateIDError reports ids that occur more than once on one side of a
// diff. Indexing such a project would silently hide a track.
type DuplicateIDError struct {
	Side string
	IDs  []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s in %s project: %s", ErrDuplicateID, e.Side, strings.Join(e.IDs, ", "))
}

func (e *DuplicateIDError) Unwrap() error {
	return ErrDuplicateID
}

// ChangeKind names the kind of a Change.
type ChangeKind string

const (
	TrackRemoved       ChangeKind = "removed"
	TrackAdded         ChangeKind = "added"
	TrackRenamed       ChangeKind = "renamed"
	InstrumentSwapped  ChangeKind = "swapped"
	DevicesModified    ChangeKind = "devices-modified"
	DeviceChainAdded   ChangeKind = "chain-added"
	DeviceChainRemoved ChangeKind = "chain-removed"
)

// Change is one semantic difference. Track is the effective name of the
// track the change is reported against. Old and New are set for renames and
// swaps; for renames an unset user name is "None".
type Change struct {
	Kind    ChangeKind `json:"kind" yaml:"kind"`
	TrackID string     `json:"id" yaml:"id"`
	Track   string     `json:"track" yaml:"track"`
	Old     string     `json:"old,omitempty" yaml:"old,omitempty"`
	New     string     `json:"new,omitempty" yaml:"new,omitempty"`
}

// String renders the change as a human-readable line.
func (c Change) String() string {
	switch c.Kind {
	case TrackRemoved:
		return fmt.Sprintf("Removed track: %s", c.Track)
	case TrackAdded:
		return fmt.Sprintf("Added new track: %s", c.Track)
	case TrackRenamed:
		return fmt.Sprintf("Track %s: Renamed from '%s' to '%s'", c.Track, c.Old, c.New)
	case InstrumentSwapped:
		return fmt.Sprintf("Track %s: Swapped instrument %s to %s", c.TrackID, c.Old, c.New)
	case DevicesModified:
		return fmt.Sprintf("Track %s: Modified internal Rack devices", c.Track)
	case DeviceChainAdded:
		return fmt.Sprintf("Track %s: Added new Rack devices", c.Track)
	case DeviceChainRemoved:
		return fmt.Sprintf("Track %s: Removed all Rack devices", c.Track)
	}
	return fmt.Sprintf("Track %s: %s", c.Track, c.Kind)
}

// Summary joins the change lines with newlines.
func Summary(changes []Change) string {
	lines := make([]string, 0, len(changes))
	for _, c := range changes {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

// Diff compares before against after. Removals come first in before order,
// then additions and modifications in after order. A track whose id is
// on both sides yields at most one of renamed/swapped, plus at most one
// device chain change. Both projects must be non-nil.
func Diff(before, after *model.Project) ([]Change, error) {
	if before == nil || after == nil {
		return nil, ErrNilProject
	}
	oldIdx, err := index(before, "old")
	if err != nil {
		return nil, err
	}
	newIdx, err := index(after, "new")
	if err != nil {
		return nil, err
	}

	var changes []Change

	for i := range before.Tracks {
		t := &before.Tracks[i]
		if _, ok := newIdx[t.ID]; !ok {
			changes = append(changes, Change{Kind: TrackRemoved, TrackID: t.ID, Track: t.EffectiveName})
		}
	}

	for i := range after.Tracks {
		t := &after.Tracks[i]
		prev, ok := oldIdx[t.ID]
		if !ok {
			changes = append(changes, Change{Kind: TrackAdded, TrackID: t.ID, Track: t.EffectiveName})
			continue
		}
		if prev.Equal(t) {
			continue
		}
		changes = append(changes, diffTrack(prev, t)...)
	}

	log.Debugf("diff: old=%d new=%d changes=%d", len(before.Tracks), len(after.Tracks), len(changes))
	return changes, nil
}

func diffTrack(before, after *model.Track) []Change {
	var changes []Change

	switch {
	case !model.NamesEqual(before.UserName, after.UserName):
		changes = append(changes, Change{
			Kind:    TrackRenamed,
			TrackID: after.ID,
			Track:   after.EffectiveName,
			Old:     model.NameOrNone(before.UserName),
			New:     model.NameOrNone(after.UserName),
		})
	case before.EffectiveName != after.EffectiveName:
		// A name change the user did not make comes from the device that
		// drives the track name being replaced.
		changes = append(changes, Change{
			Kind:    InstrumentSwapped,
			TrackID: after.ID,
			Track:   after.EffectiveName,
			Old:     before.EffectiveName,
			New:     after.EffectiveName,
		})
	}

	if kind, ok := compareBranches(before.Branches, after.Branches); ok {
		changes = append(changes, Change{Kind: kind, TrackID: after.ID, Track: after.EffectiveName})
	}
	return changes
}

// compareBranches treats the lists as opaque values: it says whether a chain
// appeared, disappeared or changed, never what changed inside it.
func compareBranches(before, after []model.Branch) (ChangeKind, bool) {
	switch {
	case before != nil && after != nil:
		if model.BranchesEqual(before, after) {
			return "", false
		}
		return DevicesModified, true
	case after != nil:
		return DeviceChainAdded, true
	case before != nil:
		return DeviceChainRemoved, true
	}
	return "", false
}

func index(p *model.Project, side string) (map[string]*model.Track, error) {
	idx := make(map[string]*model.Track, len(p.Tracks))
	var dups []string
	seen := make(map[string]bool)
	for i := range p.Tracks {
		t := &p.Tracks[i]
		if _, ok := idx[t.ID]; ok {
			if !seen[t.ID] {
				dups = append(dups, t.ID)
				seen[t.ID] = true
			}
			continue
		}
		idx[t.ID] = t
	}
	if len(dups) > 0 {
		return nil, &DuplicateIDError{Side: side, IDs: dups}
	}
	return idx, nil
}
