// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package liveset

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/parser"
	"github.com/alsctl/alsctl/internal/source"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<Ableton MajorVersion="5">
  <LiveSet>
    <Tracks>
      <MidiTrack Id="12">
        <Name>
          <EffectiveName Value="Drum Rack" />
          <UserName Value="" />
        </Name>
        <DeviceChain>
          <Branches>
            <DrumBranch>
              <Name><EffectiveName Value="Kick" /></Name>
            </DrumBranch>
          </Branches>
        </DeviceChain>
      </MidiTrack>
      <AudioTrack Id="13">
        <Name>
          <EffectiveName Value="Vox" />
          <UserName Value="Lead Vox" />
        </Name>
      </AudioTrack>
    </Tracks>
  </LiveSet>
</Ableton>`

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func check(t *testing.T, p *model.Project) {
	t.Helper()
	require.Len(t, p.Tracks, 2)
	assert.Equal(t, "12", p.Tracks[0].ID)
	assert.Nil(t, p.Tracks[0].UserName)
	require.Len(t, p.Tracks[0].Branches, 1)
	assert.Equal(t, "Kick", p.Tracks[0].Branches[0].EffectiveName)
	assert.Equal(t, "Lead Vox", *p.Tracks[1].UserName)
}

func TestLoad(t *testing.T) {
	t.Run("gzip", func(t *testing.T) {
		p, report, err := Load(bytes.NewReader(gz(t, doc)))
		require.NoError(t, err)
		assert.True(t, report.Clean())
		check(t, p)
	})

	t.Run("plain", func(t *testing.T) {
		p, _, err := Load(strings.NewReader(doc))
		require.NoError(t, err)
		check(t, p)
	})

	t.Run("options pass through", func(t *testing.T) {
		_, _, err := Load(strings.NewReader(doc), parser.WithGate(parser.GatePermissive))
		require.NoError(t, err)
	})
}

func TestLoadTransportErrors(t *testing.T) {
	t.Run("bad header", func(t *testing.T) {
		_, _, err := Load(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("truncated stream", func(t *testing.T) {
		data := gz(t, doc)
		_, _, err := Load(bytes.NewReader(data[:len(data)/2]))
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("corrupt checksum", func(t *testing.T) {
		data := gz(t, doc)
		data[len(data)-6] ^= 0xff
		_, _, err := Load(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("bad xml is not transport", func(t *testing.T) {
		_, _, err := Load(bytes.NewReader(gz(t, "<Ableton><LiveSet></Ableton>")))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTransport)
	})
}

func TestIsGzip(t *testing.T) {
	assert.True(t, IsGzip(bufio.NewReader(bytes.NewReader(gz(t, "x")))))
	assert.False(t, IsGzip(bufio.NewReader(strings.NewReader("<Ableton/>"))))
	assert.False(t, IsGzip(bufio.NewReader(strings.NewReader(""))))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.als")
	require.NoError(t, os.WriteFile(path, gz(t, doc), 0o600))

	p, _, err := LoadFile(context.Background(), &source.Opener{}, path)
	require.NoError(t, err)
	check(t, p)

	_, _, err = LoadFile(context.Background(), &source.Opener{}, path+".missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	p, _, err = LoadFile(context.Background(), &source.Opener{Stdin: strings.NewReader(doc)}, source.Stdin)
	require.NoError(t, err)
	check(t, p)
}
