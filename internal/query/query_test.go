// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spanmark/internal/span"
	"spanmark/internal/tokenizer"
)

// buildQuery constructs a query the way the factory would, without pulling in
// the collaborator packages.
func buildQuery(t *testing.T, raw string) *Query {
	t.Helper()
	tok := tokenizer.NewDefaultTokenizer()
	tokens := tok.Tokenize(raw, true)
	var maps CharMaps
	maps.ProcessedToNormalized, maps.NormalizedToProcessed = tok.CharIndexMap(raw, joinTokenEntities(tokens))
	return NewQuery(raw, raw, tokens, maps)
}

func TestQueryTexts(t *testing.T) {
	q := buildQuery(t, "Hello, World!")

	assert.Equal(t, "Hello, World!", q.Text())
	assert.Equal(t, "Hello, World!", q.ProcessedText())
	assert.Equal(t, "hello world", q.NormalizedText())
	assert.Equal(t, []string{"hello", "world"}, q.NormalizedTokens())

	assert.Equal(t, "Hello, World!", q.TextFor(FormRaw))
	assert.Equal(t, "hello world", q.TextFor(FormNormalized))
	assert.Equal(t, "", q.TextFor(TextForm(9)))
}

func TestTransformIndexIdentity(t *testing.T) {
	// A query with no maps treats all three forms as identical.
	q := NewQuery("same text", "same text",
		[]tokenizer.Token{{Entity: "same", Raw: "same"}, {Entity: "text", Raw: "text"}}, CharMaps{})

	idx, err := q.TransformIndex(5, FormRaw, FormNormalized)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)

	idx, err = q.TransformIndex(5, FormNormalized, FormRaw)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}

func TestTransformIndexInvalidForm(t *testing.T) {
	q := buildQuery(t, "Hello")

	_, err := q.TransformIndex(0, TextForm(7), FormRaw)
	assert.ErrorIs(t, err, ErrInvalidForm)

	_, err = q.TransformIndex(0, FormRaw, TextForm(-1))
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestTransformIndexMissingKey(t *testing.T) {
	q := NewQuery("ab", "ab", nil, CharMaps{
		ProcessedToNormalized: span.CharMap{0: 0},
		NormalizedToProcessed: span.CharMap{0: 0},
	})

	// Index 0 is mapped; index 1 is absent and must not fall back to identity.
	idx, err := q.TransformIndex(0, FormRaw, FormNormalized)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = q.TransformIndex(1, FormRaw, FormNormalized)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestTransformIndexStepwise(t *testing.T) {
	q := buildQuery(t, "Hello, World!")

	// Translating raw to normalized in one call equals chaining the two
	// adjacent translations.
	direct, err := q.TransformIndex(7, FormRaw, FormNormalized)
	require.NoError(t, err)

	mid, err := q.TransformIndex(7, FormRaw, FormProcessed)
	require.NoError(t, err)
	chained, err := q.TransformIndex(mid, FormProcessed, FormNormalized)
	require.NoError(t, err)

	assert.Equal(t, direct, chained)
	assert.Equal(t, 6, direct)
}

func TestTransformIndexRoundTrip(t *testing.T) {
	q := buildQuery(t, "Hello, World!")

	// 'W' sits at raw index 7 and normalized index 6.
	down, err := q.TransformIndex(6, FormNormalized, FormRaw)
	require.NoError(t, err)
	assert.Equal(t, 7, down)

	up, err := q.TransformIndex(down, FormRaw, FormNormalized)
	require.NoError(t, err)
	assert.Equal(t, 6, up)
}

func TestTransformIndexSameForm(t *testing.T) {
	q := buildQuery(t, "Hello, World!")

	idx, err := q.TransformIndex(12, FormRaw, FormRaw)
	require.NoError(t, err)
	assert.Equal(t, 12, idx)
}

func TestTransformSpan(t *testing.T) {
	q := buildQuery(t, "Hello, World!")

	s, err := q.TransformSpan(span.New(7, 11), FormRaw, FormNormalized)
	require.NoError(t, err)
	assert.Equal(t, span.New(6, 10), s)

	// Span translation preserves coverage of the mapped region.
	assert.Equal(t, "world", q.NormalizedText()[s.Start:s.End+1])
}

func TestTransformSpanIdentityPreservesLength(t *testing.T) {
	q := NewQuery("same text", "same text", nil, CharMaps{})

	in := span.New(2, 6)
	out, err := q.TransformSpan(in, FormRaw, FormNormalized)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, in.Length(), out.Length())
}

func TestTransformSpanPropagatesError(t *testing.T) {
	q := NewQuery("ab", "ab", nil, CharMaps{
		ProcessedToNormalized: span.CharMap{0: 0},
		NormalizedToProcessed: span.CharMap{0: 0},
	})

	_, err := q.TransformSpan(span.New(0, 1), FormRaw, FormNormalized)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestAttachSystemEntityCandidatesOnce(t *testing.T) {
	q := buildQuery(t, "one two three")

	first := []*QueryEntity{{entity: NewEntity("sys:number")}}
	q.AttachSystemEntityCandidates(first)
	q.AttachSystemEntityCandidates([]*QueryEntity{{entity: NewEntity("sys:email")}})

	got := q.SystemEntityCandidates(nil)
	require.Len(t, got, 1)
	assert.Equal(t, "sys:number", got[0].Entity().Type)
}

func TestSystemEntityCandidatesFilter(t *testing.T) {
	q := buildQuery(t, "one two three")
	q.AttachSystemEntityCandidates([]*QueryEntity{
		{entity: NewEntity("sys:number")},
		{entity: NewEntity("sys:email")},
		{entity: NewEntity("sys:number")},
	})

	all := q.SystemEntityCandidates(nil)
	assert.Len(t, all, 3)

	numbers := q.SystemEntityCandidates([]string{"sys:number"})
	require.Len(t, numbers, 2)
	for _, c := range numbers {
		assert.Equal(t, "sys:number", c.Entity().Type)
	}

	assert.Empty(t, q.SystemEntityCandidates([]string{"sys:url"}))
}

func TestParseTextForm(t *testing.T) {
	form, err := ParseTextForm("processed")
	require.NoError(t, err)
	assert.Equal(t, FormProcessed, form)

	_, err = ParseTextForm("canonical")
	assert.ErrorIs(t, err, ErrInvalidForm)
}

func TestTextFormString(t *testing.T) {
	assert.Equal(t, "raw", FormRaw.String())
	assert.Equal(t, "processed", FormProcessed.String())
	assert.Equal(t, "normalized", FormNormalized.String())
}
