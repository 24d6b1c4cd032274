// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/alsctl/alsctl/internal/model"
)

// ErrNotSnapshot is returned by Load for documents that are neither a
// project nor an envelope.
var ErrNotSnapshot = errors.New("not a snapshot document")

// Format is a snapshot serialization.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown snapshot format %q: must be one of [json yaml]", s)
}

// FormatFor picks the format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Envelope wraps a project with its provenance.
type Envelope struct {
	Source    string         `json:"source" yaml:"source"`
	Serial    int64          `json:"serial" yaml:"serial"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	Digest    string         `json:"digest" yaml:"digest"`
	Project   *model.Project `json:"project" yaml:"project"`
}

// NewEnvelope wraps p. Serial is left for the Store to assign.
func NewEnvelope(source string, p *model.Project) *Envelope {
	return &Envelope{
		Source:    source,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Digest:    Digest(p),
		Project:   p,
	}
}

// Digest is a content hash of the project's JSON form. Equal projects have
// equal digests.
func Digest(p *model.Project) string {
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Save writes a bare project document.
func Save(w io.Writer, p *model.Project, f Format) error {
	return encode(w, p, f)
}

// SaveEnvelope writes e including its provenance.
func SaveEnvelope(w io.Writer, e *Envelope, f Format) error {
	return encode(w, e, f)
}

func encode(w io.Writer, v interface{}, f Format) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
	}
	return nil
}

// Load decodes a snapshot. JSON is detected by content, anything else is
// tried as YAML. Bare projects come back in an Envelope with only Project and
// Digest set.
func Load(data []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return loadJSON(trimmed)
	}
	return loadYAML(trimmed)
}

func loadJSON(data []byte) (*Envelope, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrNotSnapshot)
	}

	switch {
	case gjson.GetBytes(data, "project").IsObject():
		var e Envelope
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode envelope: %w", err)
		}
		return finish(&e), nil

	case gjson.GetBytes(data, "Tracks").Exists():
		var p model.Project
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode project: %w", err)
		}
		return finish(&Envelope{Project: &p}), nil
	}
	return nil, fmt.Errorf("%w: no project or Tracks key", ErrNotSnapshot)
}

func loadYAML(data []byte) (*Envelope, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSnapshot, err)
	}

	if _, ok := probe["project"]; ok {
		var e Envelope
		if err := yaml.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("failed to decode envelope: %w", err)
		}
		return finish(&e), nil
	}
	if _, ok := probe["Tracks"]; ok {
		var p model.Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode project: %w", err)
		}
		return finish(&Envelope{Project: &p}), nil
	}
	return nil, fmt.Errorf("%w: no project or Tracks key", ErrNotSnapshot)
}

func finish(e *Envelope) *Envelope {
	if e.Project == nil {
		e.Project = &model.Project{}
	}
	if e.Digest == "" {
		e.Digest = Digest(e.Project)
	}
	return e
}
