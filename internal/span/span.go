// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package span

import "fmt"

// Span represents a closed character or token index interval [Start, End].
// Both endpoints are inclusive, so a single character span has Start == End.
// Spans are plain values; construction does not validate that End >= Start
// because translated spans may legitimately arrive inverted when the
// underlying character maps are not order preserving.
type Span struct {
	Start int
	End   int
}

// New creates a span covering [start, end].
func New(start, end int) Span {
	return Span{Start: start, End: end}
}

// Length returns the number of indices covered by the span.
func (s Span) Length() int {
	return s.End - s.Start + 1
}

// Contains reports whether the given index falls inside the span.
func (s Span) Contains(index int) bool {
	return index >= s.Start && index <= s.End
}

// Indices returns every index covered by the span, in order.
func (s Span) Indices() []int {
	if s.End < s.Start {
		return nil
	}
	indices := make([]int, 0, s.Length())
	for i := s.Start; i <= s.End; i++ {
		indices = append(indices, i)
	}
	return indices
}

// ToDict converts the span into a serializable map projection.
func (s Span) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"start": s.Start,
		"end":   s.End,
	}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d-%d]", s.Start, s.End)
}
