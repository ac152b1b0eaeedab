// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver collapses conflicting entity annotations into a
// non-contradictory set. The scan order, removal rules, and tie-breaks are a
// behavioral contract consumed by downstream annotation pipelines and must
// not change: a strict superset eliminates the narrower entity first, a
// strict subset removes itself immediately, and equal-confidence conflicts
// keep the earlier element.
package resolver

import (
	"spanmark/internal/observability"
	"spanmark/internal/query"
	"spanmark/internal/span"
)

// Resolver filters a sequence of query entities down to one with no
// remaining subset, duplicate, or overlap conflicts. Span comparisons use
// the coordinates of a single, explicitly chosen text form for the whole
// pass. Independent invocations share no state and may run in parallel.
type Resolver struct {
	form     query.TextForm
	observer *observability.StandardObserver
}

// New creates a resolver comparing spans in the given text form's
// coordinates.
func New(form query.TextForm) *Resolver {
	return &Resolver{form: form}
}

// SetObserver sets the diagnostics sink for removal events.
func (r *Resolver) SetObserver(observer *observability.StandardObserver) {
	r.observer = observer
}

// Resolve returns the entities that survive conflict resolution, preserving
// their relative input order. The input slice is never modified; the worst
// case is quadratic in the input size, and every input (including empty)
// yields a valid result.
func (r *Resolver) Resolve(entities []*query.QueryEntity) []*query.QueryEntity {
	filtered := make([]*query.QueryEntity, len(entities))
	copy(filtered, entities)

	i := 0
	for i < len(filtered) {
		includeTarget := true
		target := filtered[i]
		j := i + 1
		for j < len(filtered) {
			other := filtered[j]
			targetSpan := target.SpanFor(r.form)
			otherSpan := other.SpanFor(r.form)

			if isSuperset(targetSpan, otherSpan) && targetSpan != otherSpan {
				// The narrower entity loses to the wider target. The list
				// shrank at j, so the same position is scanned again.
				r.logRemoval(other, "subset of a wider entity")
				filtered = remove(filtered, j)
				continue
			}

			if isSubset(targetSpan, otherSpan) && targetSpan != otherSpan {
				// The target itself is the narrower one; drop it and restart
				// the outer scan at the same position.
				r.logRemoval(target, "subset of a wider entity")
				filtered = remove(filtered, i)
				includeTarget = false
				break
			}

			if targetSpan == otherSpan || isOverlapping(targetSpan, otherSpan) {
				if confidence(target) >= confidence(other) {
					r.logRemoval(other, "overlaps a higher confidence entity")
					filtered = remove(filtered, j)
					continue
				}
				r.logRemoval(target, "overlaps a higher confidence entity")
				filtered = remove(filtered, i)
				includeTarget = false
				break
			}

			j++
		}
		if includeTarget {
			i++
		}
	}

	return filtered
}

func (r *Resolver) logRemoval(e *query.QueryEntity, reason string) {
	if r.observer == nil {
		return
	}
	r.observer.LogOperation(observability.StandardObservabilityData{
		Component:  "resolver",
		Operation:  "remove_entity",
		Success:    true,
		EntityType: e.Entity().Type,
		EntityText: e.TextFor(r.form),
		Reason:     reason,
	})
}

func remove(entities []*query.QueryEntity, index int) []*query.QueryEntity {
	return append(entities[:index], entities[index+1:]...)
}

// confidence treats an unscored entity as confidence zero.
func confidence(e *query.QueryEntity) float64 {
	if c := e.Entity().Confidence; c != nil {
		return *c
	}
	return 0
}

// isSubset reports whether a is fully covered by b.
func isSubset(a, b span.Span) bool {
	return a.Start >= b.Start && a.End <= b.End
}

// isSuperset reports whether a fully covers b.
func isSuperset(a, b span.Span) bool {
	return a.Start <= b.Start && a.End >= b.End
}

// isOverlapping reports whether the spans share at least one index without
// either containing the other.
func isOverlapping(a, b span.Span) bool {
	if isSubset(a, b) || isSuperset(a, b) {
		return false
	}
	return a.Start <= b.End && b.Start <= a.End
}
