// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package query holds the core data structures for annotated user text: the
// three-form text representation, character index translation between forms,
// and entity annotations bound to spans.
package query

import (
	"fmt"
	"strings"

	"spanmark/internal/span"
	"spanmark/internal/tokenizer"
)

// CharMaps bundles the four adjacent-pair character index correspondences a
// query can carry. A nil map means the two forms line up index for index.
// There is never a direct raw-to-normalized map; that translation composes
// through the processed form.
type CharMaps struct {
	RawToProcessed        span.CharMap
	ProcessedToRaw        span.CharMap
	ProcessedToNormalized span.CharMap
	NormalizedToProcessed span.CharMap
}

// Query stores the raw, processed, and normalized forms of a single unit of
// user text and translates character indices and spans between them. A query
// is built once and treated as read-only afterwards, except for the one-time
// attachment of system entity candidates during construction; concurrent
// readers need no synchronization once construction completes.
type Query struct {
	texts            [numForms]string
	normalizedTokens []tokenizer.Token
	charMaps         [numForms][numForms]span.CharMap

	candidates         []*QueryEntity
	candidatesAttached bool
}

// NewQuery builds a query from the raw text, the preprocessed text, the
// normalized tokens, and the character maps relating adjacent forms. The
// normalized text is derived by joining the tokens' entity text with single
// spaces; it is never supplied independently.
func NewQuery(rawText, processedText string, normalizedTokens []tokenizer.Token, maps CharMaps) *Query {
	q := &Query{normalizedTokens: normalizedTokens}
	q.texts[FormRaw] = rawText
	q.texts[FormProcessed] = processedText
	q.texts[FormNormalized] = joinTokenEntities(normalizedTokens)
	q.charMaps[FormRaw][FormProcessed] = maps.RawToProcessed
	q.charMaps[FormProcessed][FormRaw] = maps.ProcessedToRaw
	q.charMaps[FormProcessed][FormNormalized] = maps.ProcessedToNormalized
	q.charMaps[FormNormalized][FormProcessed] = maps.NormalizedToProcessed
	return q
}

// Text returns the original input text.
func (q *Query) Text() string {
	return q.texts[FormRaw]
}

// ProcessedText returns the input text after preprocessing.
func (q *Query) ProcessedText() string {
	return q.texts[FormProcessed]
}

// NormalizedText returns the normalized input text.
func (q *Query) NormalizedText() string {
	return q.texts[FormNormalized]
}

// TextFor returns the stored text for the given form, or the empty string
// for an invalid form.
func (q *Query) TextFor(form TextForm) string {
	if !form.Valid() {
		return ""
	}
	return q.texts[form]
}

// NormalizedTokens returns the normalized token texts.
func (q *Query) NormalizedTokens() []string {
	tokens := make([]string, len(q.normalizedTokens))
	for i, t := range q.normalizedTokens {
		tokens[i] = t.Entity
	}
	return tokens
}

// TransformIndex translates a character index from one text form to another,
// walking one adjacent-form step at a time. A failure at any hop aborts the
// whole translation.
func (q *Query) TransformIndex(index int, formIn, formOut TextForm) (int, error) {
	if !formIn.Valid() || !formOut.Valid() {
		return 0, fmt.Errorf("transform index %d from %s to %s: %w", index, formIn, formOut, ErrInvalidForm)
	}

	var err error
	for formIn > formOut {
		if index, err = q.stepDown(index, formIn); err != nil {
			return 0, err
		}
		formIn--
	}
	for formIn < formOut {
		if index, err = q.stepUp(index, formIn); err != nil {
			return 0, err
		}
		formIn++
	}
	return index, nil
}

// TransformSpan translates a span between text forms by translating its two
// endpoints independently. The result is not re-validated: if the underlying
// maps are not order preserving the translated span may have End < Start,
// and callers must tolerate that shape.
func (q *Query) TransformSpan(s span.Span, formIn, formOut TextForm) (span.Span, error) {
	start, err := q.TransformIndex(s.Start, formIn, formOut)
	if err != nil {
		return span.Span{}, err
	}
	end, err := q.TransformIndex(s.End, formIn, formOut)
	if err != nil {
		return span.Span{}, err
	}
	return span.Span{Start: start, End: end}, nil
}

// stepUp translates one step toward the normalized form.
func (q *Query) stepUp(index int, formIn TextForm) (int, error) {
	if formIn == FormNormalized {
		return 0, fmt.Errorf("%s form cannot be processed further: %w", formIn, ErrUnsupportedForm)
	}
	out, ok := q.charMaps[formIn][formIn+1].Lookup(index)
	if !ok {
		return 0, fmt.Errorf("no %s to %s mapping for index %d: %w", formIn, formIn+1, index, ErrInvalidIndex)
	}
	return out, nil
}

// stepDown translates one step toward the raw form.
func (q *Query) stepDown(index int, formIn TextForm) (int, error) {
	if formIn == FormRaw {
		return 0, fmt.Errorf("%s form cannot be unprocessed: %w", formIn, ErrUnsupportedForm)
	}
	out, ok := q.charMaps[formIn][formIn-1].Lookup(index)
	if !ok {
		return 0, fmt.Errorf("no %s to %s mapping for index %d: %w", formIn, formIn-1, index, ErrInvalidIndex)
	}
	return out, nil
}

// AttachSystemEntityCandidates records the system entity candidates proposed
// by a recognizer. The attachment happens exactly once, at construction time;
// later calls are ignored.
func (q *Query) AttachSystemEntityCandidates(candidates []*QueryEntity) {
	if q.candidatesAttached {
		return
	}
	q.candidates = candidates
	q.candidatesAttached = true
}

// SystemEntityCandidates returns the attached candidates whose entity type is
// in the given set. An empty type set selects every candidate.
func (q *Query) SystemEntityCandidates(types []string) []*QueryEntity {
	if len(types) == 0 {
		return append([]*QueryEntity(nil), q.candidates...)
	}
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	var selected []*QueryEntity
	for _, c := range q.candidates {
		if wanted[c.Entity().Type] {
			selected = append(selected, c)
		}
	}
	return selected
}

func (q *Query) String() string {
	return fmt.Sprintf("<Query %q>", q.Text())
}

// joinTokenEntities derives the normalized text from tokens.
func joinTokenEntities(tokens []tokenizer.Token) string {
	entities := make([]string, len(tokens))
	for i, t := range tokens {
		entities[i] = t.Entity
	}
	return strings.Join(entities, " ")
}
