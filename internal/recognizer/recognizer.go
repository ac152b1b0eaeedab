// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package recognizer proposes system entity candidates for freshly built
// queries. The default implementation matches regex patterns against the raw
// text and assigns a per-pattern confidence; the conflict resolver is
// responsible for adjudicating any overlapping candidates it produces.
package recognizer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"spanmark/internal/observability"
	"spanmark/internal/query"
	"spanmark/internal/span"
)

// entityPattern pairs a system entity type with its detection pattern and
// the confidence assigned to its matches.
type entityPattern struct {
	entityType string
	regex      *regexp.Regexp
	confidence float64
}

// RegexRecognizer detects system entities with regex patterns.
type RegexRecognizer struct {
	patterns []entityPattern
	observer *observability.StandardObserver
}

// NewRegexRecognizer creates a recognizer with the built-in patterns for
// email addresses, URLs, phone numbers, and numbers.
func NewRegexRecognizer() *RegexRecognizer {
	return &RegexRecognizer{
		patterns: []entityPattern{
			{
				entityType: "sys:email",
				regex:      regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
				confidence: 0.95,
			},
			{
				entityType: "sys:url",
				regex:      regexp.MustCompile(`https?://[^\s]+`),
				confidence: 0.95,
			},
			{
				entityType: "sys:phone",
				regex:      regexp.MustCompile(`(?:\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`),
				confidence: 0.85,
			},
			{
				entityType: "sys:number",
				regex:      regexp.MustCompile(`\d+(?:\.\d+)?`),
				confidence: 0.7,
			},
		},
	}
}

// SetObserver sets the diagnostics sink.
func (r *RegexRecognizer) SetObserver(observer *observability.StandardObserver) {
	r.observer = observer
}

// Candidates proposes system entity candidates for the query, ordered by
// their position in the raw text.
func (r *RegexRecognizer) Candidates(q *query.Query) []*query.QueryEntity {
	raw := q.Text()
	var candidates []*query.QueryEntity

	for _, p := range r.patterns {
		for _, loc := range p.regex.FindAllStringIndex(raw, -1) {
			matched := raw[loc[0]:loc[1]]
			entity := query.NewEntity(p.entityType).
				WithDisplayText(matched).
				WithValue(resolveValue(p.entityType, matched)).
				WithConfidence(p.confidence)

			candidate, err := query.NewEntityFromRawSpan(q, entity, span.New(loc[0], loc[1]-1))
			if err != nil {
				r.logSkip(p.entityType, matched, err)
				continue
			}
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Span(), candidates[j].Span()
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})
	return candidates
}

func (r *RegexRecognizer) logSkip(entityType, text string, err error) {
	if r.observer == nil {
		return
	}
	r.observer.LogOperation(observability.StandardObservabilityData{
		Component:  "recognizer",
		Operation:  "skip_candidate",
		Success:    false,
		Error:      err.Error(),
		EntityType: entityType,
		EntityText: text,
	})
}

// resolveValue derives the resolved value for a matched system entity.
func resolveValue(entityType, matched string) interface{} {
	switch entityType {
	case "sys:number":
		if v, err := strconv.ParseFloat(matched, 64); err == nil {
			return v
		}
	case "sys:email":
		return strings.ToLower(matched)
	}
	return matched
}

// NullRecognizer proposes no candidates. It stands in for consumers that
// bring their own entity detection.
type NullRecognizer struct{}

// NewNullRecognizer creates a recognizer that never proposes candidates.
func NewNullRecognizer() *NullRecognizer {
	return &NullRecognizer{}
}

// Candidates always returns nil.
func (r *NullRecognizer) Candidates(q *query.Query) []*query.QueryEntity {
	return nil
}
