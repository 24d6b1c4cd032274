// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"io"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/model"
)

// Build drains src into a new Builder. Source errors are fatal and returned
// as is, wrapped with context. On ErrTruncated the partial project is still
// returned.
func Build(src Source, opts ...Option) (*model.Project, Report, error) {
	b := NewBuilder(opts...)
	for {
		ev, err := src.Next()
		if err != nil {
			return nil, b.Report(), fmt.Errorf("failed to read event: %w", err)
		}
		if ev.Kind == EventEOF {
			break
		}
		if err := b.Handle(ev); err != nil {
			return nil, b.Report(), err
		}
	}

	p, err := b.Finish()
	r := b.Report()
	log.Debugf("parse done: events=%d tracks=%d branches=%d %s", r.Events, r.Tracks, r.Branches, r)
	return p, r, err
}

// Parse builds a project from an uncompressed XML stream.
func Parse(r io.Reader, opts ...Option) (*model.Project, Report, error) {
	return Build(NewXMLSource(r), opts...)
}
