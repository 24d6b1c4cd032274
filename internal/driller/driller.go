// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segment is one dot path element: a key, optionally followed by [N], [-N]
// or [*].
var segment = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(-?\d+|\*)?\])?$`)

// Driller navigates jsonData along path. An array with a single element is
// unwrapped unless an index says otherwise; [*] or a bare [] keeps the whole
// array. Negative indexes count from the end. A path that cannot be followed
// returns the zero Result.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)

	for _, p := range strings.Split(path, ".") {
		m := segment.FindStringSubmatch(p)
		if m == nil {
			return gjson.Result{}
		}

		val := current.Get(m[1])
		if !val.IsArray() {
			if m[2] != "" {
				return gjson.Result{}
			}
			current = val
			continue
		}

		arr := val.Array()
		switch {
		case m[2] == "":
			if len(arr) == 1 {
				val = arr[0]
			}
		case m[3] == "" || m[3] == "*":
			// whole array
		default:
			i, err := strconv.Atoi(m[3])
			if err != nil {
				return gjson.Result{}
			}
			if i < 0 {
				i += len(arr)
			}
			if i < 0 || i >= len(arr) {
				return gjson.Result{}
			}
			val = arr[i]
		}
		current = val
	}

	return current
}
