// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alsctl/alsctl/internal/model"
)

func project(tracks ...model.Track) *model.Project {
	return &model.Project{Tracks: tracks}
}

func track(id, name string) model.Track {
	return model.Track{Type: model.MidiTrack, ID: id, EffectiveName: name}
}

func TestDiffRenameNotSwap(t *testing.T) {
	before := project(track("1", "Piano"))
	renamed := track("1", "Piano")
	renamed.UserName = model.StringPtr("Lead")
	after := project(renamed)

	changes, err := Diff(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, TrackRenamed, changes[0].Kind)
	assert.Equal(t, "Track Piano: Renamed from 'None' to 'Lead'", changes[0].String())
}

func TestDiffRenameWinsOverSwap(t *testing.T) {
	before := project(track("1", "Piano"))
	after := project(track("1", "Lead"))
	after.Tracks[0].UserName = model.StringPtr("Lead")

	changes, err := Diff(before, after)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, TrackRenamed, changes[0].Kind)
}

func TestDiffSwap(t *testing.T) {
	changes, err := Diff(project(track("1", "Piano")), project(track("1", "Guitar")))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, InstrumentSwapped, changes[0].Kind)
	assert.Equal(t, "Piano", changes[0].Old)
	assert.Equal(t, "Guitar", changes[0].New)
	assert.Contains(t, changes[0].String(), "Guitar")
}

func TestDiffChains(t *testing.T) {
	chain := model.BranchList{{Type: model.InstrumentBranch, EffectiveName: "Operator"}}

	tests := []struct {
		name   string
		before model.BranchList
		after  model.BranchList
		kind   ChangeKind
		msg    string
	}{
		{"added", nil, chain, DeviceChainAdded, "Track Keys: Added new Rack devices"},
		{"added empty", nil, model.BranchList{}, DeviceChainAdded, "Track Keys: Added new Rack devices"},
		{"removed", chain, nil, DeviceChainRemoved, "Track Keys: Removed all Rack devices"},
		{"modified", chain, model.BranchList{{Type: model.InstrumentBranch, EffectiveName: "Wavetable"}}, DevicesModified, "Track Keys: Modified internal Rack devices"},
		{"emptied", chain, model.BranchList{}, DevicesModified, "Track Keys: Modified internal Rack devices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := track("2", "Keys")
			b.Branches = tt.before
			a := track("2", "Keys")
			a.Branches = tt.after

			changes, err := Diff(project(b), project(a))
			require.NoError(t, err)
			require.Len(t, changes, 1)
			assert.Equal(t, tt.kind, changes[0].Kind)
			assert.Equal(t, "2", changes[0].TrackID)
			assert.Equal(t, tt.msg, changes[0].String())
		})
	}
}

func TestDiffChainIndependentOfName(t *testing.T) {
	b := track("2", "Piano")
	a := track("2", "Guitar")
	a.Branches = model.BranchList{{Type: model.DrumBranch, EffectiveName: "Kick"}}

	changes, err := Diff(project(b), project(a))
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, InstrumentSwapped, changes[0].Kind)
	assert.Equal(t, DeviceChainAdded, changes[1].Kind)
}

func TestDiffSelfIsEmpty(t *testing.T) {
	p := project(track("1", "Piano"), track("2", "Bass"))
	p.Tracks[1].Branches = model.BranchList{{Type: model.DrumBranch, EffectiveName: "Kick", Branches: model.BranchList{}}}

	changes, err := Diff(p, p)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiffAddRemove(t *testing.T) {
	a := project(track("1", "Piano"), track("2", "Bass"))
	b := project(track("2", "Bass"), track("3", "Drums"), track("4", "Vox"))

	forward, err := Diff(a, b)
	require.NoError(t, err)
	require.Len(t, forward, 3)
	assert.Equal(t, "Removed track: Piano", forward[0].String())
	assert.Equal(t, "Added new track: Drums", forward[1].String())
	assert.Equal(t, "Added new track: Vox", forward[2].String())

	backward, err := Diff(b, a)
	require.NoError(t, err)
	require.Len(t, backward, 3)

	kinds := map[string]ChangeKind{}
	for _, c := range backward {
		kinds[c.TrackID] = c.Kind
	}
	assert.Equal(t, map[string]ChangeKind{"1": TrackAdded, "3": TrackRemoved, "4": TrackRemoved}, kinds)
}

func TestDiffDuplicateID(t *testing.T) {
	ok := project(track("1", "Piano"))
	dup := project(track("1", "Piano"), track("2", "Bass"), track("1", "Guitar"), track("2", "Vox"))

	_, err := Diff(ok, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))

	var de *DuplicateIDError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "new", de.Side)
	assert.Equal(t, []string{"1", "2"}, de.IDs)
	assert.Contains(t, err.Error(), "1, 2")

	_, err = Diff(dup, ok)
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "old", de.Side)
}

func TestDiffNilProject(t *testing.T) {
	p := project(track("1", "Piano"))

	for _, pair := range [][2]*model.Project{{nil, p}, {p, nil}, {nil, nil}} {
		changes, err := Diff(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrNilProject)
		assert.Nil(t, changes)
	}
}

func TestSummary(t *testing.T) {
	changes := []Change{
		{Kind: TrackRemoved, TrackID: "1", Track: "Piano"},
		{Kind: InstrumentSwapped, TrackID: "2", Track: "Guitar", Old: "Bass", New: "Guitar"},
	}
	assert.Equal(t, "Removed track: Piano\nTrack 2: Swapped instrument Bass to Guitar", Summary(changes))
	assert.Equal(t, "", Summary(nil))
}

func TestChangeJSON(t *testing.T) {
	b, err := json.Marshal(Change{Kind: TrackAdded, TrackID: "7", Track: "Pad"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"added","id":"7","track":"Pad"}`, string(b))
}

func TestRawDiff(t *testing.T) {
	before, err := json.Marshal(project(track("1", "Piano")))
	require.NoError(t, err)
	after, err := json.Marshal(project(track("1", "Guitar")))
	require.NoError(t, err)

	out, changed, err := RawDiff(before, before, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, out)

	out, changed, err = RawDiff(before, after, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out, "Piano")
	assert.Contains(t, out, "Guitar")

	_, _, err = RawDiff([]byte("{"), after, false)
	assert.Error(t, err)
}
