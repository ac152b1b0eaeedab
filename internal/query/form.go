// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import "fmt"

// TextForm identifies one of the three parallel representations of a query's
// text. The ordering is meaningful: translation between non-adjacent forms
// always steps through the intermediate form, downward steps (toward raw)
// use inverse maps and upward steps (toward normalized) use forward maps.
type TextForm int

const (
	// FormRaw is the verbatim input text.
	FormRaw TextForm = iota
	// FormProcessed is the text after preprocessing.
	FormProcessed
	// FormNormalized is the text after tokenization and normalization.
	FormNormalized

	numForms
)

// Valid reports whether the form is one of the three defined values.
func (f TextForm) Valid() bool {
	return f >= FormRaw && f < numForms
}

func (f TextForm) String() string {
	switch f {
	case FormRaw:
		return "raw"
	case FormProcessed:
		return "processed"
	case FormNormalized:
		return "normalized"
	default:
		return fmt.Sprintf("form(%d)", int(f))
	}
}

// ParseTextForm converts a form name ("raw", "processed", "normalized") into
// a TextForm value.
func ParseTextForm(name string) (TextForm, error) {
	switch name {
	case "raw":
		return FormRaw, nil
	case "processed":
		return FormProcessed, nil
	case "normalized":
		return FormNormalized, nil
	default:
		return 0, fmt.Errorf("unknown text form %q: %w", name, ErrInvalidForm)
	}
}
