// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package liveset loads .als files. A Live Set is gzip-compressed XML;
// uncompressed XML is accepted as well so that hand-edited fixtures and
// extracted documents can be read directly.
package liveset
