// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() Project {
	return Project{Tracks: []Track{
		{
			Type:          MidiTrack,
			ID:            "1",
			EffectiveName: "Drum Rack",
			UserName:      StringPtr("Beats"),
			Branches: BranchList{
				{Type: DrumBranch, EffectiveName: "Kick", Branches: BranchList{
					{Type: AudioEffectBranch, EffectiveName: "Saturator"},
				}},
				{Type: DrumBranch, EffectiveName: "Snare", Branches: BranchList{}},
			},
		},
		{Type: AudioTrack, ID: "2", EffectiveName: "Vox"},
	}}
}

func TestEqual(t *testing.T) {
	a, b := sample(), sample()
	assert.True(t, a.Equal(&b))

	tests := []struct {
		name   string
		mutate func(p *Project)
	}{
		{"type", func(p *Project) { p.Tracks[1].Type = MidiTrack }},
		{"id", func(p *Project) { p.Tracks[1].ID = "3" }},
		{"effective name", func(p *Project) { p.Tracks[1].EffectiveName = "Voice" }},
		{"user name set", func(p *Project) { p.Tracks[1].UserName = StringPtr("Lead") }},
		{"user name cleared", func(p *Project) { p.Tracks[0].UserName = nil }},
		{"nested branch name", func(p *Project) { p.Tracks[0].Branches[0].Branches[0].EffectiveName = "Drive" }},
		{"empty group dropped", func(p *Project) { p.Tracks[0].Branches[1].Branches = nil }},
		{"branch added", func(p *Project) {
			p.Tracks[0].Branches = append(p.Tracks[0].Branches, Branch{Type: DrumBranch})
		}},
		{"track removed", func(p *Project) { p.Tracks = p.Tracks[:1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := sample()
			tt.mutate(&changed)
			orig := sample()
			assert.False(t, orig.Equal(&changed))
		})
	}
}

func TestBranchesEqual_NilVersusEmpty(t *testing.T) {
	assert.True(t, BranchesEqual(nil, nil))
	assert.True(t, BranchesEqual(BranchList{}, BranchList{}))
	assert.False(t, BranchesEqual(nil, BranchList{}))
	assert.False(t, BranchesEqual(BranchList{}, nil))
}

func TestNamesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *string
		want bool
	}{
		{"both unset", nil, nil, true},
		{"one unset", StringPtr("Vox"), nil, false},
		{"other unset", nil, StringPtr("Vox"), false},
		{"same value", StringPtr("Vox"), StringPtr("Vox"), true},
		{"different value", StringPtr("Vox"), StringPtr("Lead"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NamesEqual(tt.a, tt.b))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := sample()
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	// Unset fields are omitted, an empty group is kept.
	assert.NotContains(t, string(raw), `"UserName":null`)
	assert.Contains(t, string(raw), `"Branches":[]`)
	assert.Contains(t, string(raw), `"Id":"2"`)

	var back Project
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, p.Equal(&back))
}

func TestJSONLegacySnapshot(t *testing.T) {
	raw := `{"Tracks":[{"Type":"MidiTrack","Id":"4","EffectiveName":"Keys","UserName":"Rhodes",` +
		`"Branches":[{"Type":"InstrumentBranch","EffectiveName":"EP"}]}]}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.Len(t, p.Tracks, 1)
	assert.Equal(t, "Rhodes", p.Tracks[0].DisplayName())
	assert.Nil(t, p.Tracks[0].Branches[0].Branches)
}

func TestYAMLRoundTrip(t *testing.T) {
	p := sample()
	raw, err := yaml.Marshal(p)
	require.NoError(t, err)

	var back Project
	require.NoError(t, yaml.Unmarshal(raw, &back))
	assert.True(t, p.Equal(&back), string(raw))
}

func TestKinds(t *testing.T) {
	for _, k := range []string{AudioTrack, MidiTrack, ReturnTrack} {
		assert.True(t, IsTrackKind(k), k)
		assert.False(t, IsBranchKind(k), k)
	}
	for _, k := range []string{DrumBranch, InstrumentBranch, AudioEffectBranch} {
		assert.True(t, IsBranchKind(k), k)
		assert.False(t, IsTrackKind(k), k)
	}
	assert.False(t, IsTrackKind("MasterTrack"))
}

func TestHelpers(t *testing.T) {
	p := sample()

	tr, ok := p.Track("1")
	require.True(t, ok)
	assert.Equal(t, "Beats", tr.DisplayName())
	_, ok = p.Track("99")
	assert.False(t, ok)

	assert.Equal(t, 3, CountBranches(tr.Branches))
	assert.Equal(t, 2, Depth(tr.Branches))
	assert.Equal(t, 0, Depth(nil))
	assert.Equal(t, 1, Depth(BranchList{}))

	assert.Equal(t, "None", NameOrNone(nil))
	assert.Equal(t, "x", NameOrNone(StringPtr("x")))
}
