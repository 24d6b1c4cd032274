// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package model

// Track kinds, taken verbatim from the Live Set tag names.
const (
	AudioTrack  = "AudioTrack"
	MidiTrack   = "MidiTrack"
	ReturnTrack = "ReturnTrack"
)

// Branch kinds, taken verbatim from the Live Set tag names.
const (
	DrumBranch        = "DrumBranch"
	InstrumentBranch  = "InstrumentBranch"
	AudioEffectBranch = "AudioEffectBranch"
)

// Project is the root of one parsed Live Set.
type Project struct {
	Tracks []Track `json:"Tracks" yaml:"Tracks"`
}

// Track is a single audio, MIDI or return signal path.
//
// UserName is nil when the user never overrode the name. Branches is nil when
// the track has no rack structure; a non-nil empty slice records a rack whose
// branch group was present but empty.
type Track struct {
	Type          string     `json:"Type" yaml:"Type"`
	ID            string     `json:"Id" yaml:"Id"`
	EffectiveName string     `json:"EffectiveName" yaml:"EffectiveName"`
	UserName      *string    `json:"UserName,omitempty" yaml:"UserName,omitempty"`
	Branches      BranchList `json:"Branches,omitzero" yaml:"Branches,omitempty"`
}

// Branch is a node in a rack's device chain. Branches carry no identifier.
type Branch struct {
	Type          string     `json:"Type" yaml:"Type"`
	EffectiveName string     `json:"EffectiveName" yaml:"EffectiveName"`
	UserName      *string    `json:"UserName,omitempty" yaml:"UserName,omitempty"`
	Branches      BranchList `json:"Branches,omitzero" yaml:"Branches,omitempty"`
}

// BranchList is an optional sibling list of branches. Only a nil list counts
// as absent when serializing, so an empty group survives a round trip.
type BranchList []Branch

// IsZero reports whether the list is absent.
func (l BranchList) IsZero() bool {
	return l == nil
}

// IsTrackKind reports whether name opens a track.
func IsTrackKind(name string) bool {
	switch name {
	case AudioTrack, MidiTrack, ReturnTrack:
		return true
	}
	return false
}

// IsBranchKind reports whether name opens a branch.
func IsBranchKind(name string) bool {
	switch name {
	case DrumBranch, InstrumentBranch, AudioEffectBranch:
		return true
	}
	return false
}

// NameOrNone renders an optional user name, using "None" when unset.
func NameOrNone(name *string) string {
	if name == nil {
		return "None"
	}
	return *name
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// DisplayName is the user name when set, else the effective name.
func (t *Track) DisplayName() string {
	if t.UserName != nil {
		return *t.UserName
	}
	return t.EffectiveName
}

// DisplayName is the user name when set, else the effective name.
func (b *Branch) DisplayName() string {
	if b.UserName != nil {
		return *b.UserName
	}
	return b.EffectiveName
}

// Track returns the first track with the given id.
func (p *Project) Track(id string) (*Track, bool) {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			return &p.Tracks[i], true
		}
	}
	return nil, false
}

// CountBranches returns the number of branches in the list, at every depth.
func CountBranches(branches []Branch) int {
	n := len(branches)
	for i := range branches {
		n += CountBranches(branches[i].Branches)
	}
	return n
}

// Depth returns how many nested branch groups hang below the list. A nil list
// has depth 0 and a present one at least 1.
func Depth(branches []Branch) int {
	if branches == nil {
		return 0
	}
	deepest := 0
	for i := range branches {
		if d := Depth(branches[i].Branches); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
