// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters applies --filter expressions to output rows.
//
// A filter is key, operator and target. Filters are separated by commas, or
// by ALSCTL_FILTER_DELIM when targets contain commas. A row is kept only if
// it passes every filter.
//
// Operators, each negated by a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix
//   - @ : substring, or membership for list values
//   - / : regular expression
//   - < and > : numeric when both sides are numbers, else lexical
//
// Examples:
//
//   - "type=MidiTrack" : MIDI tracks only
//   - "name^Drum" : names starting with Drum
//   - "devices>0" : tracks with rack branches
//   - "user!=" : tracks the user renamed
//
// The key is matched against attr titles first and is otherwise used as a
// dot path into the row (see package driller).
package filters
