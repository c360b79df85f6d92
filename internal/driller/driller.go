// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// Driller resolves path against doc. A path is a dot-separated list of keys,
// each optionally followed by one or more [n] indexes. A single-element
// array is treated as its element, both mid-path and as the final value, so
// "speakers.name" reads the name of a lone speaker. A missing path yields a
// Result that does not exist.
func Driller(doc string, path string) gjson.Result {
	current := gjson.Parse(doc)

	for _, segment := range strings.Split(path, ".") {
		name := segment
		if i := strings.IndexByte(segment, '['); i >= 0 {
			name = segment[:i]
		}

		if name != "" {
			current = unwrap(current)
			current = current.Get(gjson.Escape(name))
		}

		for _, m := range indexRegex.FindAllStringSubmatch(segment, -1) {
			idx, _ := strconv.Atoi(m[1])
			if !current.IsArray() {
				return gjson.Result{}
			}
			items := current.Array()
			if idx >= len(items) {
				return gjson.Result{}
			}
			current = items[idx]
		}

		if !current.Exists() {
			return gjson.Result{}
		}
	}

	return unwrap(current)
}

func unwrap(r gjson.Result) gjson.Result {
	if r.IsArray() {
		if items := r.Array(); len(items) == 1 {
			return items[0]
		}
	}
	return r
}
