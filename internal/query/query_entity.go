// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"fmt"
	"strings"

	"spanmark/internal/span"
)

// QueryEntity binds an Entity payload to equivalent spans in all three text
// forms of a query: for each form it carries the matched text snippet, the
// character span, and the whitespace token span. Query entities are immutable
// after construction; the conflict resolver keeps or discards them but never
// mutates them.
type QueryEntity struct {
	texts      [numForms]string
	spans      [numForms]span.Span
	tokenSpans [numForms]span.Span
	entity     *Entity
}

// NewEntityFromRawSpan creates a query entity from a span over the query's
// raw text, deriving the processed and normalized spans through the query's
// character maps.
func NewEntityFromRawSpan(q *Query, entity *Entity, rawSpan span.Span) (*QueryEntity, error) {
	procSpan, err := q.TransformSpan(rawSpan, FormRaw, FormProcessed)
	if err != nil {
		return nil, fmt.Errorf("deriving processed span: %w", err)
	}
	normSpan, err := q.TransformSpan(rawSpan, FormRaw, FormNormalized)
	if err != nil {
		return nil, fmt.Errorf("deriving normalized span: %w", err)
	}
	return newQueryEntity(q, entity, [numForms]span.Span{rawSpan, procSpan, normSpan}), nil
}

// NewEntityFromNormalizedSpan creates a query entity from a span over the
// query's normalized text, deriving the processed and raw spans through the
// inverse character maps.
func NewEntityFromNormalizedSpan(q *Query, entity *Entity, normalizedSpan span.Span) (*QueryEntity, error) {
	procSpan, err := q.TransformSpan(normalizedSpan, FormNormalized, FormProcessed)
	if err != nil {
		return nil, fmt.Errorf("deriving processed span: %w", err)
	}
	rawSpan, err := q.TransformSpan(normalizedSpan, FormNormalized, FormRaw)
	if err != nil {
		return nil, fmt.Errorf("deriving raw span: %w", err)
	}
	return newQueryEntity(q, entity, [numForms]span.Span{rawSpan, procSpan, normalizedSpan}), nil
}

func newQueryEntity(q *Query, entity *Entity, spans [numForms]span.Span) *QueryEntity {
	qe := &QueryEntity{spans: spans, entity: entity}
	for form := FormRaw; form < numForms; form++ {
		fullText := q.texts[form]
		qe.texts[form] = sliceSpan(fullText, spans[form])
		qe.tokenSpans[form] = tokenSpanFor(fullText, spans[form])
	}
	return qe
}

// Entity returns the annotation payload.
func (qe *QueryEntity) Entity() *Entity {
	return qe.entity
}

// Text returns the matched snippet of the raw text.
func (qe *QueryEntity) Text() string {
	return qe.texts[FormRaw]
}

// Span returns the character span over the raw text.
func (qe *QueryEntity) Span() span.Span {
	return qe.spans[FormRaw]
}

// TextFor returns the matched snippet for the given form.
func (qe *QueryEntity) TextFor(form TextForm) string {
	if !form.Valid() {
		return ""
	}
	return qe.texts[form]
}

// SpanFor returns the character span for the given form.
func (qe *QueryEntity) SpanFor(form TextForm) span.Span {
	if !form.Valid() {
		return span.Span{}
	}
	return qe.spans[form]
}

// TokenSpanFor returns the whitespace token span for the given form.
func (qe *QueryEntity) TokenSpanFor(form TextForm) span.Span {
	if !form.Valid() {
		return span.Span{}
	}
	return qe.tokenSpans[form]
}

// ToDict converts the query entity into a serializable map projection: the
// entity projection merged with the raw text snippet and raw span.
func (qe *QueryEntity) ToDict() map[string]interface{} {
	base := qe.entity.ToDict()
	base["text"] = qe.Text()
	base["span"] = qe.Span().ToDict()
	return base
}

func (qe *QueryEntity) String() string {
	role := ""
	if qe.entity.Role != "" {
		role = ":" + qe.entity.Role
	}
	return fmt.Sprintf("%s%s %q %d-%d", qe.entity.Type, role, qe.Text(), qe.Span().Start, qe.Span().End)
}

// sliceSpan extracts the text covered by a closed span, clamping the bounds
// to the text. Spans are never re-validated at this layer, so an inverted or
// out-of-range span yields a shortened or empty snippet.
func sliceSpan(text string, s span.Span) string {
	lo := s.Start
	if lo < 0 {
		lo = 0
	}
	if lo > len(text) {
		lo = len(text)
	}
	hi := s.End + 1
	if hi < lo {
		hi = lo
	}
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}

// tokenSpanFor converts a character span into a whitespace token span: the
// token start is the number of tokens before the span, and the token end is
// derived from the token count of the sliced text. Span boundaries are
// assumed to fall on token boundaries; a span that splits a token produces a
// degenerate token range, which is left to the caller.
func tokenSpanFor(fullText string, s span.Span) span.Span {
	prefixEnd := s.Start
	if prefixEnd < 0 {
		prefixEnd = 0
	}
	if prefixEnd > len(fullText) {
		prefixEnd = len(fullText)
	}
	start := len(strings.Fields(fullText[:prefixEnd]))
	count := len(strings.Fields(sliceSpan(fullText, s)))
	return span.Span{Start: start, End: start - 1 + count}
}
