// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package filters narrows CLI result sets with --filter expressions such as
// "speaker=Ada", "views>51k", "duration<20m", "published-at<2016" or
// "tags@science".
//
// How a target is compared depends on the value it meets. Counts and
// durations compare as numbers, timestamps compare against a date of year,
// month or day precision, tag lists match when any tag does, and everything
// else compares as text.
package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/staranto/talksgo/internal/attrs"
	"github.com/staranto/talksgo/internal/driller"
)

// filterRegex splits an expression into key, operator and target. Operators
// are one of = ~ ^ < > @ /, optionally negated with a leading !.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~<>@/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	re *regexp.Regexp
}

// BuildFilters parses a --filter value. Malformed expressions and invalid
// regular expressions are logged and dropped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("TALKS_FILTER_DELIM"); ok {
		delim = d
	}

	for _, expr := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil {
			log.Error("invalid filter: " + expr)
			continue
		}

		op, negate := strings.CutPrefix(parts[2], "!")
		f := Filter{Key: parts[1], Negate: negate, Operand: op, Target: parts[3]}

		if op == "/" {
			re, err := regexp.Compile(f.Target)
			if err != nil {
				log.Errorf("invalid filter regex %q: %v", f.Target, err)
				continue
			}
			f.re = re
		}

		filters = append(filters, f)
	}

	return filters
}

// FilterDataset returns the rows of candidates matching every filter in spec,
// each reduced to attrs keyed by OutputKey. Values are left raw; transforms
// run later in the output phase.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var rows []map[string]interface{}

	filters := resolve(BuildFilters(spec), attrs)

	for _, candidate := range candidates.Array() {
		if !matchAll(candidate, filters) {
			continue
		}

		row := make(map[string]interface{}, len(attrs))
		for _, attr := range attrs {
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		rows = append(rows, row)
	}

	return rows
}

// bound is a filter paired with the record path of its key.
type bound struct {
	Filter
	path string
}

// resolve binds filters to attr paths. A filter naming no attr is reported
// and ignored.
func resolve(filters []Filter, attrs attrs.AttrList) []bound {
	result := make([]bound, 0, len(filters))
	for _, f := range filters {
		path := ""
		for _, attr := range attrs {
			if attr.OutputKey == f.Key {
				path = attr.Key
				break
			}
		}
		if path == "" {
			msg := fmt.Sprintf("filter key not found: %s", f.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}
		result = append(result, bound{Filter: f, path: path})
	}
	return result
}

// matchAll reports whether candidate passes every filter. A missing or null
// value fails.
func matchAll(candidate gjson.Result, filters []bound) bool {
	for _, f := range filters {
		value := driller.Driller(candidate.Raw, f.path).Value()
		if value == nil || !f.Match(value) {
			return false
		}
	}
	return true
}

// Match applies the filter to a decoded JSON value. A target that cannot be
// read the way the value demands never matches, negated or not.
func (f Filter) Match(value interface{}) bool {
	var (
		ok  bool
		err error
	)

	switch v := value.(type) {
	case float64:
		ok, err = f.matchNumber(v)
	case bool:
		ok, err = f.matchText(strconv.FormatBool(v))
	case string:
		ok, err = f.matchString(v)
	case []interface{}:
		ok, err = f.matchList(v)
	case map[string]interface{}:
		_, ok = v[f.Target]
	default:
		err = fmt.Errorf("cannot filter a %T", value)
	}

	if err != nil {
		log.Errorf("filter %s%s%s: %v", f.Key, f.Operand, f.Target, err)
		return false
	}
	return ok != f.Negate
}

// matchString compares timestamps as times when the target is a date and
// the operand is =, < or >. Everything else compares as text.
func (f Filter) matchString(v string) (bool, error) {
	if f.Operand == "=" || f.Operand == "<" || f.Operand == ">" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			if start, end, err := parseSpan(f.Target); err == nil {
				return within(t, start, end, f.Operand), nil
			}
		}
	}
	return f.matchText(v)
}

func (f Filter) matchText(v string) (bool, error) {
	switch f.Operand {
	case "=":
		return v == f.Target, nil
	case "~":
		return strings.EqualFold(v, f.Target), nil
	case "^":
		return strings.HasPrefix(v, f.Target), nil
	case ">":
		return v > f.Target, nil
	case "<":
		return v < f.Target, nil
	case "@":
		return strings.Contains(strings.ToLower(v), strings.ToLower(f.Target)), nil
	case "/":
		if f.re == nil {
			return false, fmt.Errorf("regex not compiled")
		}
		return f.re.MatchString(v), nil
	}
	return false, fmt.Errorf("unsupported operand %q", f.Operand)
}

// matchNumber compares counts and durations. Targets may be plain or
// comma-grouped numbers, SI counts (51k), clocks (22:00) or Go durations
// (20m); durations count seconds. Text operands see the number as written.
func (f Filter) matchNumber(v float64) (bool, error) {
	switch f.Operand {
	case "=", "<", ">":
	default:
		return f.matchText(strconv.FormatFloat(v, 'f', -1, 64))
	}

	target, err := parseNumber(f.Target)
	if err != nil {
		return false, err
	}

	switch f.Operand {
	case "<":
		return v < target, nil
	case ">":
		return v > target, nil
	}
	return v == target, nil
}

// within compares t with the span [start, end). "=" matches anywhere inside
// it, so published-at=2015-11 means November 2015.
func within(t, start, end time.Time, op string) bool {
	switch op {
	case "<":
		return t.Before(start)
	case ">":
		return !t.Before(end)
	}
	return !t.Before(start) && t.Before(end)
}

// matchList matches a tag list when any tag matches. "=" and "@" are exact
// and case-insensitive membership respectively.
func (f Filter) matchList(list []interface{}) (bool, error) {
	op := f.Operand
	if op == "@" {
		op = "~"
	}
	item := Filter{Operand: op, Target: f.Target, re: f.re}

	for _, v := range list {
		ok, err := item.matchText(fmt.Sprint(v))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func parseNumber(target string) (float64, error) {
	s := strings.TrimSpace(target)

	if n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return n, nil
	}
	if secs, ok := parseClock(s); ok {
		return float64(secs), nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d.Seconds(), nil
	}
	if n, unit, err := humanize.ParseSI(s); err == nil && unit == "" {
		return n, nil
	}

	return 0, fmt.Errorf("%q is not a number", target)
}

// parseClock reads mm:ss or hh:mm:ss.
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 { //nolint:mnd
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n //nolint:mnd
	}
	return total, true
}

// spanLayouts are the accepted date targets with the span each one covers.
var spanLayouts = []struct {
	layout string
	next   func(time.Time) time.Time
}{
	{time.RFC3339, func(t time.Time) time.Time { return t.Add(time.Second) }},
	{"2006-01-02", func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }},
	{"2006-01", func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }},
	{"2006", func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }},
}

// parseSpan reads a date target as the span of time it names.
func parseSpan(target string) (time.Time, time.Time, error) {
	s := strings.TrimSpace(target)
	for _, l := range spanLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t, l.next(t), nil
		}
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%q is not a date", target)
}
