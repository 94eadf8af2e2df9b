// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/iwazzer/dbba/internal/log"
)

// ChangedColumns compares two canonical record texts and returns the names
// of the top level columns that were added, removed or modified, sorted.
func ChangedColumns(before, after string) ([]string, error) {
	delta, err := gojsondiff.New().Compare([]byte(before), []byte(after))
	if err != nil {
		return nil, fmt.Errorf("failed to compare records: %w", err)
	}
	if !delta.Modified() {
		return nil, nil
	}

	var cols []string
	for _, d := range delta.Deltas() {
		switch d := d.(type) {
		case gojsondiff.PostDelta:
			cols = append(cols, d.PostPosition().String())
		case gojsondiff.PreDelta:
			cols = append(cols, d.PrePosition().String())
		}
	}
	sort.Strings(cols)
	log.Tracef("changed columns: %v", cols)

	return cols, nil
}

// Delta renders the difference between two canonical record texts in the
// ascii +/- style. Coloring adds ANSI escapes.
func Delta(before, after string, coloring bool) (string, error) {
	delta, err := gojsondiff.New().Compare([]byte(before), []byte(after))
	if err != nil {
		return "", fmt.Errorf("failed to compare records: %w", err)
	}

	var left map[string]interface{}
	if err := json.Unmarshal([]byte(before), &left); err != nil {
		return "", fmt.Errorf("failed to unmarshal record: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       coloring,
	}
	return formatter.NewAsciiFormatter(left, config).Format(delta)
}
