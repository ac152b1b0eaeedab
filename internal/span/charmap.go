// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package span

// CharMap is a partial character index correspondence between two text forms.
// A nil CharMap means the two forms are identical and every index maps to
// itself. A non-nil CharMap that lacks an entry for a requested index marks
// that index as invalid rather than falling back to identity; the two cases
// are deliberately distinct.
type CharMap map[int]int

// Lookup resolves an index through the map. For a nil map the index is
// returned unchanged with ok set to true.
func (m CharMap) Lookup(index int) (int, bool) {
	if m == nil {
		return index, true
	}
	out, ok := m[index]
	return out, ok
}

// Invert returns the reverse correspondence. When multiple source indices
// map to the same target, the smallest source index wins. Inverting a nil
// (identity) map yields nil.
func (m CharMap) Invert() CharMap {
	if m == nil {
		return nil
	}
	inverted := make(CharMap, len(m))
	for from, to := range m {
		if existing, ok := inverted[to]; !ok || from < existing {
			inverted[to] = from
		}
	}
	return inverted
}
