// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/jsonapi"
)

// Payload marshals records into a JSON:API document. Each record lands under
// data[] with its jsonapi attr fields in .attributes, which is where --attrs
// paths point by default.
func Payload[T any](records []T) (bytes.Buffer, error) {
	ptrs := make([]*T, len(records))
	for i := range records {
		ptrs[i] = &records[i]
	}

	var buf bytes.Buffer
	if err := jsonapi.MarshalPayload(&buf, ptrs); err != nil {
		return bytes.Buffer{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return buf, nil
}
