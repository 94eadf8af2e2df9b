// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwazzer/dbba/internal/report"
	"github.com/iwazzer/dbba/internal/source"
	"github.com/iwazzer/dbba/internal/trigger"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func FormatValidator(value any) error {
	return oneOf(value, append(slices.Clone(report.Formats), "yml"))
}

func WaitValidator(value any) error {
	return oneOf(value, trigger.Kinds)
}

func DriverValidator(value any) error {
	s, _ := value.(string)
	return source.CheckDriver(s)
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if slices.Contains(valid, strings.ToLower(s)) {
		return nil
	}
	return fmt.Errorf("must be one of %v", valid)
}
