// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
)

// GlobalFlagsValidator checks the list-valued flags shared by the query
// commands. A value swallowed from the next flag (--attrs --sort) is an error.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	for _, name := range []string{"attrs", "filter", "sort"} {
		if err := JammedFlagValidator(c.String(name)); err != nil {
			return fmt.Errorf("--%s %w", name, err)
		}
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// URLValidator requires an absolute http(s) URL.
func URLValidator(value any) error {
	u, err := url.Parse(value.(string))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL", value)
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	if !slices.Contains(validOutputFlagValues, value.(string)) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func CacheBackendValidator(value any) error {
	var valid = []string{"memory", "disk", "s3", "none"}
	if !slices.Contains(valid, value.(string)) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
