// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alsctl/alsctl/internal/aws"
	"github.com/alsctl/alsctl/internal/log"
)

// Stdin is the Spec that reads from standard input.
const Stdin = "-"

// Kind classifies what an input holds.
type Kind int

const (
	// LiveSet is a gzip or plain XML Live Set.
	LiveSet Kind = iota
	// Snapshot is a previously saved JSON or YAML project.
	Snapshot
)

func (k Kind) String() string {
	if k == Snapshot {
		return "snapshot"
	}
	return "liveset"
}

// Classify decides by extension whether path is a snapshot or a Live Set.
func Classify(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return Snapshot
	}
	return LiveSet
}

// Spec is a parsed input spec.
type Spec struct {
	// Path is the absolute local path, the s3 URI or "-".
	Path string
	// Version is the text after "::", empty when absent.
	Version string
}

// ParseSpec splits an optional ::version suffix and makes local paths
// absolute. It does not check that the path exists.
func ParseSpec(s string) (Spec, error) {
	if s == "" {
		return Spec{}, os.ErrInvalid
	}

	path, version, _ := strings.Cut(s, "::")
	if path == "" {
		return Spec{}, os.ErrInvalid
	}

	if path != Stdin && !aws.IsURI(path) && !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return Spec{}, err
		}
		path = filepath.Join(cwd, path)
	}
	return Spec{Path: path, Version: version}, nil
}

func (s Spec) String() string {
	if s.Version == "" {
		return s.Path
	}
	return s.Path + "::" + s.Version
}

// Opener opens specs. The zero value reads stdin from os.Stdin and builds an
// S3 client from the shell's AWS environment on first use.
type Opener struct {
	Stdin      io.Reader
	AWSOptions []aws.Option
	// S3 overrides the client used for s3:// specs.
	S3 aws.ObjectAPI
}

// Open returns a reader for path. The caller closes it.
func (o *Opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	switch {
	case path == Stdin:
		in := o.Stdin
		if in == nil {
			in = os.Stdin
		}
		log.Debug("source: stdin")
		return io.NopCloser(in), nil

	case aws.IsURI(path):
		if o.S3 == nil {
			client, err := aws.NewClient(ctx, o.AWSOptions...)
			if err != nil {
				return nil, fmt.Errorf("failed to load aws config: %w", err)
			}
			o.S3 = client
		}
		data, err := aws.Fetch(ctx, o.S3, path)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("source: file=%s", path)
	return f, nil
}

// ReadAll opens path and reads it fully.
func (o *Opener) ReadAll(ctx context.Context, path string) ([]byte, error) {
	rc, err := o.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
