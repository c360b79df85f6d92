// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package attrs parses the --attrs flag: which talk attributes to show, under
// what column names and with which value transformations.
package attrs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/talksgo/internal/config"
)

// Attr is one --attrs entry.
type Attr struct {
	// Key is the gjson path into a JSON:API record, e.g. attributes.views.
	Key string
	// Include is false for attrs that only feed --filter and --sort.
	Include bool
	// OutputKey names the value in json/yaml output and titles the column in
	// text output.
	OutputKey string
	// TransformSpec is applied to the value before output. See Transform.
	TransformSpec string
}

// aliases maps the upstream API's field names onto talk attribute names, so
// either spelling works in --attrs.
var aliases = map[string]string{
	"name":         "title",
	"viewed_count": "views",
	"published_at": "published-at",
	"published":    "published-at",
	"length":       "duration",
}

type caseFold int

const (
	keepCase caseFold = iota
	lowerCase
	upperCase
)

// transform is a parsed TransformSpec. Later letters win over earlier ones,
// so a per-attr spec overrides a global one prepended to it.
type transform struct {
	local  bool
	human  bool
	clock  bool
	fold   caseFold
	length int
}

func parseTransform(spec string) transform {
	var tr transform
	for i := 0; i < len(spec); i++ {
		switch c := spec[i]; c {
		case 't', 'T':
			tr.local = true
		case 'h', 'H':
			tr.human = true
		case 'd', 'D':
			tr.clock = true
		case 'l', 'L':
			tr.fold = lowerCase
		case 'u', 'U':
			tr.fold = upperCase
		default:
			if c != '-' && (c < '0' || c > '9') {
				continue
			}
			j := i + 1
			for j < len(spec) && spec[j] >= '0' && spec[j] <= '9' {
				j++
			}
			if n, err := strconv.Atoi(spec[i:j]); err == nil {
				tr.length = n
			}
			i = j - 1
		}
	}
	return tr
}

// Transform applies TransformSpec to value:
//
//	t    RFC3339 timestamp to the configured local zone
//	h    comma-group counts (views) and humanize timestamps
//	d    seconds (duration) as a clock, 1320 -> 22:00
//	l/u  lower or upper case
//	N    truncate to N characters; -N elides the middle instead
//
// Tag lists are joined before case and length apply.
func (a *Attr) Transform(value interface{}) interface{} {
	tr := parseTransform(a.TransformSpec)

	switch v := value.(type) {
	case float64:
		switch {
		case tr.clock:
			return clock(int(v))
		case tr.human:
			return humanize.Comma(int64(v))
		}
		return v

	case string:
		return tr.text(tr.timestamp(v))

	case []interface{}:
		if tr.fold == keepCase && tr.length == 0 {
			return v
		}
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
		return tr.text(strings.Join(parts, ", "))
	}

	return value
}

// timestamp converts and humanizes v when it is an RFC3339 time. Anything
// else is returned unchanged.
func (tr transform) timestamp(v string) string {
	if !tr.local && !tr.human {
		return v
	}

	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		if tr.local {
			log.Debugf("not a timestamp: %q", v)
		}
		return v
	}

	if tr.human {
		return humanize.Time(t)
	}

	loc := localZone()
	if loc == nil {
		return v
	}
	return t.In(loc).Format("2006-01-02T15:04:05MST")
}

func (tr transform) text(v string) string {
	switch tr.fold {
	case lowerCase:
		v = strings.ToLower(v)
	case upperCase:
		v = strings.ToUpper(v)
	}
	return truncate(v, tr.length)
}

// localZone is the config file timezone, else $TZ. Without either, times are
// left in UTC.
func localZone() *time.Location {
	tz, _ := config.GetString("timezone", "")
	if tz == "" {
		tz = os.Getenv("TZ")
	}
	if tz == "" {
		return nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Errorf("unknown timezone %q: %v", tz, err)
		return nil
	}
	return loc
}

// truncate shortens v to n runes. A negative n keeps both ends around "..".
func truncate(v string, n int) string {
	r := []rune(v)
	limit := n
	if limit < 0 {
		limit = -limit
	}
	if limit == 0 || len(r) <= limit {
		return v
	}

	side := limit/2 - 1 //nolint:mnd
	if n > 0 || side < 1 {
		return string(r[:limit])
	}
	return string(r[:side]) + ".." + string(r[len(r)-side:])
}

func clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60 //nolint:mnd
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

type AttrList []Attr

// String renders the list as key:output:transform entries.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a --attrs value, key[:output[:transform]] entries separated by
// commas, into the list. A leading ! hides the attr, a leading . reads from
// the record root instead of its attributes, and * carries a transform for
// every attr. An entry naming an attr already in the list updates it.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	for _, entry := range strings.Split(value, ",") {
		attr, name := parseAttr(entry)
		if a.update(name, attr) {
			continue
		}
		attr.Key = resolveKey(attr.Key)
		*a = append(*a, attr)
	}

	return nil
}

// parseAttr parses one entry. The returned name is the key as written, used
// to find an existing attr to update.
func parseAttr(entry string) (Attr, string) {
	fields := strings.Split(entry, ":")

	attr := Attr{Include: true, Key: strings.TrimSpace(fields[0])}
	if rest, ok := strings.CutPrefix(attr.Key, "!"); ok {
		attr.Include = false
		attr.Key = rest
	}
	if attr.Key == "*" {
		attr.Include = false
	}
	name := attr.Key
	if canonical, ok := aliases[name]; ok {
		attr.Key = canonical
	}

	switch {
	case len(fields) == 1:
		attr.OutputKey = name[strings.LastIndex(name, ".")+1:]
	case strings.TrimSpace(fields[1]) != "":
		attr.OutputKey = strings.TrimSpace(fields[1])
	default:
		attr.OutputKey = name
	}

	if len(fields) > 2 { //nolint:mnd
		attr.TransformSpec = strings.TrimSpace(fields[2])
	}

	return attr, name
}

func (a *AttrList) update(name string, attr Attr) bool {
	for i := range *a {
		existing := &(*a)[i]
		if existing.Key == name || existing.OutputKey == name || existing.Key == resolveKey(attr.Key) {
			existing.Include = attr.Include
			existing.OutputKey = attr.OutputKey
			existing.TransformSpec = attr.TransformSpec
			return true
		}
	}
	return false
}

// resolveKey turns a written key into a record path: .id reads the root,
// anything else lives under attributes.
func resolveKey(key string) string {
	switch {
	case key == "*":
		return key
	case strings.HasPrefix(key, "."):
		return key[1:]
	default:
		return "attributes." + key
	}
}

// SetGlobalTransformSpec prepends the * entry's transform to every attr.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *alist {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return nil
	}

	for i := range *alist {
		(*alist)[i].TransformSpec = spec + "," + (*alist)[i].TransformSpec
	}
	return nil
}

func (a *AttrList) Type() string {
	return "list"
}
