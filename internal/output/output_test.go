// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/alsctl/alsctl/internal/attrs"
	"github.com/alsctl/alsctl/internal/differ"
	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/snapshot"
)

func sample() *model.Project {
	return &model.Project{Tracks: []model.Track{
		{Type: model.MidiTrack, ID: "1", EffectiveName: "Operator", UserName: model.StringPtr("Lead")},
		{
			Type: model.MidiTrack, ID: "2", EffectiveName: "Drum Rack",
			Branches: model.BranchList{
				{Type: model.DrumBranch, EffectiveName: "Kick", Branches: model.BranchList{
					{Type: model.AudioEffectBranch, EffectiveName: "Saturator"},
				}},
				{Type: model.DrumBranch, EffectiveName: "Snare", Branches: model.BranchList{}},
			},
		},
		{Type: model.AudioTrack, ID: "3", EffectiveName: "Vox"},
	}}
}

// run executes fn inside a parsed command so flag lookups behave as they do
// at runtime.
func run(t *testing.T, args []string, fn func(cmd *cli.Command) error) {
	t.Helper()
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: FormatText},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "color"},
			&cli.BoolFlag{Name: "titles"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return fn(cmd)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestTrackRows(t *testing.T) {
	raw, err := TrackRows(sample())
	require.NoError(t, err)

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 3)

	assert.Equal(t, "Lead", rows[0]["name"])
	assert.Equal(t, "Lead", rows[0]["user"])
	assert.Equal(t, "Operator", rows[0]["effective"])
	assert.Equal(t, 0.0, rows[0]["depth"])
	assert.Equal(t, []interface{}{}, rows[0]["branches"])

	assert.Nil(t, rows[1]["user"])
	assert.Equal(t, "Drum Rack", rows[1]["name"])
	assert.Equal(t, 3.0, rows[1]["devices"])
	assert.Equal(t, 2.0, rows[1]["depth"])
	assert.Equal(t, []interface{}{"Kick", "Saturator", "Snare"}, rows[1]["branches"])
}

func TestVersionRows(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw, err := VersionRows([]*snapshot.Version{{ID: "abc", Serial: 2, CreatedAt: created, Tracks: 5, Source: "/a.als"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"serial":2,"id":"abc","created":"2026-03-01T12:00:00Z","tracks":5,"source":"/a.als","path":""}]`, string(raw))
}

func TestSortDataset(t *testing.T) {
	base := []map[string]interface{}{
		{"name": "zebra", "devices": 3.0},
		{"name": "Alpha", "devices": 1.0},
		{"name": "beta", "devices": 3.0},
	}

	tests := []struct {
		spec string
		want []string
	}{
		{"name", []string{"Alpha", "beta", "zebra"}},
		{"-name", []string{"zebra", "beta", "Alpha"}},
		{"!name", []string{"Alpha", "beta", "zebra"}},
		{"-devices,name", []string{"beta", "zebra", "Alpha"}},
		{"devices", []string{"Alpha", "zebra", "beta"}},
		{"", []string{"zebra", "Alpha", "beta"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			data := make([]map[string]interface{}, len(base))
			copy(data, base)
			SortDataset(data, tt.spec)
			got := make([]string, 0, len(data))
			for _, row := range data {
				got = append(got, row["name"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"string", "Vox", nil, "Vox"},
		{"int", 4, nil, "4"},
		{"whole float", 3.0, nil, "3"},
		{"fraction", 2.5, nil, "2.5"},
		{"bool", true, nil, "true"},
		{"false is empty", false, nil, ""},
		{"nil", nil, nil, ""},
		{"nil custom", nil, []string{"-"}, "-"},
		{"slice", []interface{}{"Kick", "Snare"}, nil, `["Kick","Snare"]`},
		{"empty slice", []interface{}{}, []string{"-"}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestSliceDiceSpit(t *testing.T) {
	raw, err := TrackRows(sample())
	require.NoError(t, err)

	t.Run("json filtered and sorted", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--output", "json", "--filter", "type=MidiTrack", "--sort", "-id"}, func(cmd *cli.Command) error {
			return SliceDiceSpit(raw, attrs.Defaults("id", "name"), cmd, &buf, nil)
		})
		assert.JSONEq(t, `[{"id":"2","name":"Drum Rack"},{"id":"1","name":"Lead"}]`, buf.String())
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--output", "json", "--filter", "type=ReturnTrack"}, func(cmd *cli.Command) error {
			return SliceDiceSpit(raw, attrs.Defaults("id"), cmd, &buf, nil)
		})
		assert.JSONEq(t, `[]`, buf.String())
	})

	t.Run("yaml hides excluded and transforms", func(t *testing.T) {
		list := attrs.Defaults("id", "name", "devices")
		require.NoError(t, list.Set("!devices,name::u"))

		var buf bytes.Buffer
		run(t, []string{"--output", "yaml", "--filter", "devices>0"}, func(cmd *cli.Command) error {
			return SliceDiceSpit(raw, list, cmd, &buf, nil)
		})
		var got []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "DRUM RACK", got[0]["name"])
		assert.NotContains(t, got[0], "devices")
	})

	t.Run("raw", func(t *testing.T) {
		var buf bytes.Buffer
		run(t, []string{"--output", "raw"}, func(cmd *cli.Command) error {
			return SliceDiceSpit(raw, attrs.Defaults("id"), cmd, &buf, nil)
		})
		assert.Equal(t, string(raw), buf.String())
	})

	t.Run("text with titles", func(t *testing.T) {
		var buf bytes.Buffer
		called := false
		run(t, []string{"--titles", "--sort", "name"}, func(cmd *cli.Command) error {
			cmd.Metadata = map[string]interface{}{"footer": "3 tracks"}
			return SliceDiceSpit(raw, attrs.Defaults("id", "name", "user"), cmd, &buf, func(rows []map[string]interface{}) error {
				called = true
				assert.Len(t, rows, 3)
				return nil
			})
		})
		assert.True(t, called)
		out := buf.String()
		assert.Contains(t, out, "name")
		assert.Contains(t, out, "Drum Rack")
		assert.Contains(t, out, "3 tracks")
		assert.Less(t, strings.Index(out, "Drum Rack"), strings.Index(out, "Vox"))
	})
}

func TestTableWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	run(t, nil, func(cmd *cli.Command) error {
		TableWriter(nil, attrs.Defaults("id"), cmd, &buf)
		return nil
	})
	assert.Empty(t, buf.String())
}

func TestTree(t *testing.T) {
	out := Tree(sample(), "song.als", false)
	for _, want := range []string{"song.als", "1 Lead [MidiTrack]", "2 Drum Rack [MidiTrack]", "Kick [DrumBranch]", "Saturator [AudioEffectBranch]", emptyGroup, "3 Vox [AudioTrack]"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Kick"), strings.Index(out, "Saturator"))
	assert.Less(t, strings.Index(out, "Saturator"), strings.Index(out, "Snare"))
}

func TestChanges(t *testing.T) {
	changes := []differ.Change{
		{Kind: differ.TrackRemoved, TrackID: "4", Track: "Pad"},
		{Kind: differ.TrackRenamed, TrackID: "1", Track: "Operator", Old: "None", New: "Lead"},
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Changes(&buf, changes, nil, FormatText, false))
		assert.Equal(t, "Removed track: Pad\nTrack Operator: Renamed from 'None' to 'Lead'\n", buf.String())
	})

	t.Run("text empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Changes(&buf, nil, nil, FormatText, false))
		assert.Equal(t, NoChanges+"\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Changes(&buf, changes, sample(), FormatJSON, false))

		var got ChangeReport
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, differ.Summary(changes), got.Summary)
		assert.Equal(t, changes, got.Changes)
		assert.True(t, sample().Equal(got.Project))
	})

	t.Run("json empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Changes(&buf, nil, nil, FormatJSON, false))
		assert.JSONEq(t, `{"summary":"","changes":[]}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Changes(&buf, changes, nil, FormatYAML, false))
		assert.Contains(t, buf.String(), "kind: removed")
		assert.Contains(t, buf.String(), "summary:")
		assert.NotContains(t, buf.String(), "project:")
	})
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(TrackRow{}), &buf)
	out := buf.String()
	for _, k := range []string{"id", "type", "name", "user", "effective", "devices", "depth", "branches[]"} {
		assert.Contains(t, out, "\n"+k+"\n")
	}

	assert.Equal(t, []string{"serial", "id", "created", "tracks", "source", "path"}, schemaKeys(reflect.TypeOf(&VersionRow{})))
	assert.Nil(t, schemaKeys(reflect.TypeOf("")))
}
