// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/alsctl/alsctl/internal/cacheutil"
	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/model"
)

// ErrStoreDisabled is returned by Record when caching is turned off.
var ErrStoreDisabled = errors.New("snapshot store disabled")

// Version is one entry of a source's history.
type Version struct {
	// ID is a short digest prefix.
	ID        string
	Serial    int64
	CreatedAt time.Time
	Source    string
	Digest    string
	// Path is where the envelope or snapshot file lives.
	Path string
	// Tracks is the number of tracks in the stored project.
	Tracks int
}

const idLen = 12

// Store keeps numbered envelopes per source beneath the cache directory.
type Store struct {
	now func() time.Time
}

// NewStore returns a store rooted at cacheutil.Dir().
func NewStore() *Store {
	return &Store{now: time.Now}
}

func subdirs(source string) []string {
	return []string{"snapshots", cacheutil.EncodeKey(source)}
}

// Versions lists the history of source, highest serial first.
func (s *Store) Versions(source string) ([]*Version, error) {
	entries, err := cacheutil.List(subdirs(source))
	if err != nil {
		return nil, err
	}

	versions := make([]*Version, 0, len(entries))
	for _, entry := range entries {
		e, err := Load(entry.Data)
		if err != nil {
			log.WithError(err).Warnf("skipping unreadable snapshot %s", entry.Path)
			continue
		}
		versions = append(versions, versionOf(e, entry.Path))
	}
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Serial > versions[j].Serial
	})
	log.Debugf("snapshot versions: source=%s count=%d", source, len(versions))
	return versions, nil
}

// Record stores p as the next version of source. If p matches the latest
// stored version nothing is written and that version is returned with false.
func (s *Store) Record(source string, p *model.Project) (*Version, bool, error) {
	if !cacheutil.Enabled() {
		return nil, false, ErrStoreDisabled
	}
	versions, err := s.Versions(source)
	if err != nil {
		return nil, false, err
	}

	e := NewEnvelope(source, p)
	e.CreatedAt = s.now().UTC().Truncate(time.Second)
	if len(versions) > 0 {
		latest := versions[0]
		if latest.Digest == e.Digest {
			log.Debugf("snapshot unchanged: source=%s serial=%d", source, latest.Serial)
			return latest, false, nil
		}
		e.Serial = latest.Serial + 1
	} else {
		e.Serial = 1
	}

	var buf bytes.Buffer
	if err := SaveEnvelope(&buf, e, JSON); err != nil {
		return nil, false, err
	}
	key := strconv.FormatInt(e.Serial, 10)
	if err := cacheutil.Write(subdirs(source), key, buf.Bytes()); err != nil {
		return nil, false, err
	}
	path, _ := cacheutil.EntryPath(subdirs(source), key)
	log.Debugf("snapshot recorded: source=%s serial=%d", source, e.Serial)
	return versionOf(e, path), true, nil
}

// Read loads the project stored at v.Path.
func (s *Store) Read(v *Version) (*model.Project, error) {
	data, err := os.ReadFile(v.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	e, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", v.Path, err)
	}
	return e.Project, nil
}

func versionOf(e *Envelope, path string) *Version {
	id := e.Digest
	if len(id) > idLen {
		id = id[:idLen]
	}
	return &Version{
		ID:        id,
		Serial:    e.Serial,
		CreatedAt: e.CreatedAt,
		Source:    e.Source,
		Digest:    e.Digest,
		Path:      path,
		Tracks:    len(e.Project.Tracks),
	}
}
