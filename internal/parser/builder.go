// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"

	"github.com/alsctl/alsctl/internal/log"
	"github.com/alsctl/alsctl/internal/model"
)

// Tag names the builder reacts to besides the track and branch kinds.
const (
	tagBranches      = "Branches"
	tagName          = "Name"
	tagEffectiveName = "EffectiveName"
	tagUserName      = "UserName"
	attrID           = "Id"
	attrValue        = "Value"
)

// Builder accumulates a Project from events. It holds all parse state, so
// independent documents can be built concurrently with separate Builders. A
// Builder itself is not safe for concurrent use.
type Builder struct {
	opts    options
	project model.Project

	// current is the open track, if any. Tracks never nest.
	current *model.Track
	// stack holds one in-progress sibling list per open <Branches> group.
	stack [][]model.Branch
	// inName is the name-block gate.
	inName bool

	report   Report
	finished bool
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: newOptions(opts)}
}

// Report returns diagnostics gathered so far.
func (b *Builder) Report() Report {
	r := b.report
	r.Anomalies = append([]Anomaly(nil), b.report.Anomalies...)
	return r
}

// Handle applies one event. It returns ErrMalformed once the anomaly ceiling
// is exceeded; every other problem is recorded and the event skipped. An
// EventEOF finishes the build, see Finish.
func (b *Builder) Handle(ev Event) error {
	if b.finished {
		return fmt.Errorf("builder already finished")
	}
	b.report.Events++

	switch ev.Kind {
	case EventStart:
		b.open(ev)
	case EventEmpty:
		b.empty(ev)
	case EventEnd:
		b.close(ev)
	case EventEOF:
		_, err := b.Finish()
		return err
	}

	if limit := b.opts.maxAnomalies; limit > 0 && len(b.report.Anomalies) > limit {
		return fmt.Errorf("%w: %d anomalies exceed limit of %d: %s",
			ErrMalformed, len(b.report.Anomalies), limit, b.report)
	}
	return nil
}

// Finish ends the build and returns the project. If a track or branch group
// is still open the document was truncated: the partial project is returned
// together with ErrTruncated. The open track is not added to the project.
func (b *Builder) Finish() (*model.Project, error) {
	b.finished = true
	p := b.project

	if b.current != nil || len(b.stack) > 0 {
		open := "none"
		if b.current != nil {
			open = b.current.ID
		}
		return &p, fmt.Errorf("%w: open track %s, %d open branch groups", ErrTruncated, open, len(b.stack))
	}
	return &p, nil
}

func (b *Builder) open(ev Event) {
	switch {
	case model.IsTrackKind(ev.Name):
		id, ok := ev.Attr(attrID)
		if !ok {
			b.anomaly(AnomalyMissingID, ev, "")
			return
		}
		if b.current != nil {
			b.anomaly(AnomalyNestedTrack, ev, "track "+b.current.ID+" still open")
			b.flushTrack()
		}
		b.current = &model.Track{Type: ev.Name, ID: id}

	case ev.Name == tagBranches:
		b.stack = append(b.stack, []model.Branch{})

	case model.IsBranchKind(ev.Name):
		if len(b.stack) == 0 {
			b.anomaly(AnomalyOrphanBranch, ev, "no enclosing branch group")
			return
		}
		top := len(b.stack) - 1
		b.stack[top] = append(b.stack[top], model.Branch{Type: ev.Name})
		b.report.Branches++

	case ev.Name == tagName:
		b.inName = true
	}
}

func (b *Builder) empty(ev Event) {
	switch {
	case model.IsTrackKind(ev.Name), model.IsBranchKind(ev.Name), ev.Name == tagBranches:
		b.openClose(ev)
		return
	case ev.Name != tagEffectiveName && ev.Name != tagUserName:
		return
	}
	if !b.inName && b.opts.gate == GateStrict {
		return
	}

	value, ok := ev.Attr(attrValue)
	if !ok {
		b.anomaly(AnomalyMissingValue, ev, "")
		return
	}

	effective, user := b.target()
	if effective == nil {
		b.anomaly(AnomalyOrphanName, ev, "no open track or branch")
		return
	}

	if ev.Name == tagEffectiveName {
		*effective = value
		return
	}
	// An empty user name means the user never set one.
	if value != "" {
		*user = model.StringPtr(value)
	}
}

// openClose applies a self-closing track, branch or branch group as its open
// immediately followed by its close.
func (b *Builder) openClose(ev Event) {
	if model.IsTrackKind(ev.Name) {
		if _, ok := ev.Attr(attrID); !ok {
			b.anomaly(AnomalyMissingID, ev, "")
			return
		}
		b.open(ev)
		b.flushTrack()
		return
	}
	b.open(ev)
	if ev.Name == tagBranches {
		b.close(ev)
	}
}

// target picks where name values go: the last branch of the innermost group
// when there is one, else the open track.
func (b *Builder) target() (*string, **string) {
	if n := len(b.stack); n > 0 {
		if top := b.stack[n-1]; len(top) > 0 {
			br := &top[len(top)-1]
			return &br.EffectiveName, &br.UserName
		}
	}
	if b.current != nil {
		return &b.current.EffectiveName, &b.current.UserName
	}
	return nil, nil
}

func (b *Builder) close(ev Event) {
	switch {
	case model.IsTrackKind(ev.Name):
		if b.current == nil {
			b.anomaly(AnomalyUnmatchedClose, ev, "no open track")
			return
		}
		b.flushTrack()

	case ev.Name == tagBranches:
		if len(b.stack) == 0 {
			b.anomaly(AnomalyUnmatchedClose, ev, "no open branch group")
			return
		}
		n := len(b.stack)
		list := b.stack[n-1]
		b.stack = b.stack[:n-1]

		if n > 1 {
			parent := b.stack[n-2]
			if len(parent) == 0 {
				b.anomaly(AnomalyOrphanGroup, ev, "enclosing group has no branch")
				return
			}
			parent[len(parent)-1].Branches = list
			return
		}
		if b.current == nil {
			b.anomaly(AnomalyOrphanGroup, ev, "no open track")
			return
		}
		b.current.Branches = list

	case ev.Name == tagName:
		b.inName = false
	}
}

func (b *Builder) flushTrack() {
	b.project.Tracks = append(b.project.Tracks, *b.current)
	b.report.Tracks++
	log.Tracef("track closed: id=%s name=%s", b.current.ID, b.current.EffectiveName)
	b.current = nil
}

func (b *Builder) anomaly(kind AnomalyKind, ev Event, detail string) {
	a := Anomaly{Kind: kind, Event: b.report.Events, Name: ev.Name, Detail: detail}
	b.report.Anomalies = append(b.report.Anomalies, a)
	log.Debugf("parse anomaly: %s", a)
}
