// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// XMLSource turns an XML byte stream into builder events.
//
// encoding/xml reports <X/> as a start element followed by an end element, so
// the source looks one token ahead: a start immediately followed by its own
// end is emitted as a single EventEmpty. <X></X> is indistinguishable from
// <X/> in the XML infoset and is treated the same way.
type XMLSource struct {
	dec     *xml.Decoder
	pending xml.Token
	done    bool
}

// NewXMLSource wraps r. The reader should already be decompressed.
func NewXMLSource(r io.Reader) *XMLSource {
	dec := xml.NewDecoder(r)
	// Live Sets declare UTF-8; anything else is passed through untouched.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return &XMLSource{dec: dec}
}

// Offset is the byte offset of the decoder in the input stream.
func (s *XMLSource) Offset() int64 {
	return s.dec.InputOffset()
}

// Next implements Source.
func (s *XMLSource) Next() (Event, error) {
	for {
		tok, err := s.token()
		if errors.Is(err, io.EOF) {
			s.done = true
			return Event{Kind: EventEOF}, nil
		}
		if err != nil {
			return Event{}, fmt.Errorf("xml at offset %d: %w", s.dec.InputOffset(), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			ev := Event{Kind: EventStart, Name: t.Name.Local, Attrs: attrMap(t.Attr)}
			next, err := s.token()
			if err != nil && !errors.Is(err, io.EOF) {
				return Event{}, fmt.Errorf("xml at offset %d: %w", s.dec.InputOffset(), err)
			}
			if end, ok := next.(xml.EndElement); ok && end.Name == t.Name {
				ev.Kind = EventEmpty
			} else if next != nil {
				s.pending = next
			}
			return ev, nil
		case xml.EndElement:
			return Event{Kind: EventEnd, Name: t.Name.Local}, nil
		}
		// Character data, comments, directives and processing instructions
		// carry nothing the model needs.
	}
}

func (s *XMLSource) token() (xml.Token, error) {
	if s.pending != nil {
		tok := s.pending
		s.pending = nil
		return tok, nil
	}
	if s.done {
		return nil, io.EOF
	}
	tok, err := s.dec.Token()
	if err != nil {
		return nil, err
	}
	return xml.CopyToken(tok), nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}
