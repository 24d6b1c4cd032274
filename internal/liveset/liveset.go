// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package liveset

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/model"
	"github.com/alsctl/alsctl/internal/parser"
	"github.com/alsctl/alsctl/internal/source"
)

// ErrTransport marks failures of the decompression layer, as opposed to
// failures of the XML inside it.
var ErrTransport = errors.New("transport error")

var gzipMagic = []byte{0x1f, 0x8b}

// IsGzip reports whether r starts with the gzip magic number.
func IsGzip(r *bufio.Reader) bool {
	head, err := r.Peek(len(gzipMagic))
	return err == nil && bytes.Equal(head, gzipMagic)
}

// Load decompresses r if needed and builds a project from it.
func Load(r io.Reader, opts ...parser.Option) (*model.Project, parser.Report, error) {
	br := bufio.NewReader(r)

	var in io.Reader = br
	if IsGzip(br) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, parser.Report{}, fmt.Errorf("%w: %w", ErrTransport, err)
		}
		defer zr.Close()
		in = transportReader{zr}
		log.Debug("liveset: gzip stream")
	} else {
		log.Debug("liveset: plain xml stream")
	}

	return parser.Parse(in, opts...)
}

// LoadFile opens path through o and loads it.
func LoadFile(ctx context.Context, o *source.Opener, path string, opts ...parser.Option) (*model.Project, parser.Report, error) {
	rc, err := o.Open(ctx, path)
	if err != nil {
		return nil, parser.Report{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rc.Close()

	p, report, err := Load(rc, opts...)
	if err != nil {
		return p, report, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return p, report, nil
}

// transportReader tags decompression errors with ErrTransport so they stay
// distinguishable after the XML decoder wraps them.
type transportReader struct {
	r io.Reader
}

func (t transportReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		err = fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return n, err
}
