// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"time"

	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/snapshot"
)

// TrackRow is the flattened view of a track that tq filters and sorts.
type TrackRow struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	User      *string `json:"user"`
	Effective string  `json:"effective"`
	// Devices counts branches at every depth.
	Devices int `json:"devices"`
	// Depth is 0 for tracks without a rack.
	Depth    int      `json:"depth"`
	Branches []string `json:"branches"`
}

// VersionRow is the flattened view of a stored snapshot.
type VersionRow struct {
	Serial  int64  `json:"serial"`
	ID      string `json:"id"`
	Created string `json:"created"`
	Tracks  int    `json:"tracks"`
	Source  string `json:"source"`
	Path    string `json:"path"`
}

// TrackRows returns one row per track as a JSON array.
func TrackRows(p *model.Project) ([]byte, error) {
	rows := make([]TrackRow, 0, len(p.Tracks))
	for i := range p.Tracks {
		t := &p.Tracks[i]
		rows = append(rows, TrackRow{
			ID:        t.ID,
			Type:      t.Type,
			Name:      t.DisplayName(),
			User:      t.UserName,
			Effective: t.EffectiveName,
			Devices:   model.CountBranches(t.Branches),
			Depth:     model.Depth(t.Branches),
			Branches:  branchNames(t.Branches, nil),
		})
	}
	return json.Marshal(rows)
}

// branchNames lists display names depth first.
func branchNames(branches []model.Branch, acc []string) []string {
	if acc == nil {
		acc = []string{}
	}
	for i := range branches {
		acc = append(acc, branches[i].DisplayName())
		acc = branchNames(branches[i].Branches, acc)
	}
	return acc
}

// VersionRows returns one row per version as a JSON array.
func VersionRows(versions []*snapshot.Version) ([]byte, error) {
	rows := make([]VersionRow, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, VersionRow{
			Serial:  v.Serial,
			ID:      v.ID,
			Created: v.CreatedAt.UTC().Format(time.RFC3339),
			Tracks:  v.Tracks,
			Source:  v.Source,
			Path:    v.Path,
		})
	}
	return json.Marshal(rows)
}
