// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import "errors"

var (
	// ErrInvalidForm marks a text form argument outside the three defined
	// values.
	ErrInvalidForm = errors.New("invalid text form")

	// ErrUnsupportedForm marks an attempt to step a translation past the
	// raw form (downward) or the normalized form (upward).
	ErrUnsupportedForm = errors.New("unsupported text form for translation")

	// ErrInvalidIndex marks an index for which a registered character map
	// has no entry. This is distinct from the absence of a map, which is
	// treated as an identity correspondence.
	ErrInvalidIndex = errors.New("invalid character index")
)
