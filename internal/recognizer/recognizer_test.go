// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spanmark/internal/query"
	"spanmark/internal/tokenizer"
)

func annotate(t *testing.T, text string) *query.Query {
	t.Helper()
	factory := query.NewQueryFactory(NewRegexRecognizer(), tokenizer.NewDefaultTokenizer(), nil)
	return factory.Create(text)
}

func typesOf(entities []*query.QueryEntity) []string {
	var types []string
	for _, e := range entities {
		types = append(types, e.Entity().Type)
	}
	return types
}

func TestRecognizeEmail(t *testing.T) {
	q := annotate(t, "reach me at John.Doe@Example.com please")

	emails := q.SystemEntityCandidates([]string{"sys:email"})
	require.Len(t, emails, 1)

	e := emails[0]
	assert.Equal(t, "John.Doe@Example.com", e.Text())
	assert.Equal(t, "John.Doe@Example.com", e.Entity().DisplayText)
	// Email values resolve to their lowercase form.
	assert.Equal(t, "john.doe@example.com", e.Entity().Value)
	require.NotNil(t, e.Entity().Confidence)
	assert.Equal(t, 0.95, *e.Entity().Confidence)
}

func TestRecognizeNumber(t *testing.T) {
	q := annotate(t, "order 42 pizzas")

	numbers := q.SystemEntityCandidates([]string{"sys:number"})
	require.Len(t, numbers, 1)
	assert.Equal(t, "42", numbers[0].Text())
	assert.Equal(t, 42.0, numbers[0].Entity().Value)
}

func TestRecognizeURL(t *testing.T) {
	q := annotate(t, "see https://example.com/docs for details")

	urls := q.SystemEntityCandidates([]string{"sys:url"})
	require.Len(t, urls, 1)
	assert.Equal(t, "https://example.com/docs", urls[0].Text())
}

func TestRecognizePhone(t *testing.T) {
	q := annotate(t, "call 555-123-4567 today")

	phones := q.SystemEntityCandidates([]string{"sys:phone"})
	require.Len(t, phones, 1)
	assert.Equal(t, "555-123-4567", phones[0].Text())
}

func TestCandidatesOrderedBySpan(t *testing.T) {
	q := annotate(t, "call 555-123-4567 or mail a@b.io")

	candidates := q.SystemEntityCandidates(nil)
	require.NotEmpty(t, candidates)
	for i := 1; i < len(candidates); i++ {
		prev, cur := candidates[i-1].Span(), candidates[i].Span()
		if prev.Start == cur.Start {
			assert.LessOrEqual(t, prev.End, cur.End)
			continue
		}
		assert.Less(t, prev.Start, cur.Start)
	}
	assert.Contains(t, typesOf(candidates), "sys:phone")
	assert.Contains(t, typesOf(candidates), "sys:email")
}

func TestNullRecognizer(t *testing.T) {
	factory := query.NewQueryFactory(NewNullRecognizer(), tokenizer.NewDefaultTokenizer(), nil)
	q := factory.Create("call 555-123-4567")

	assert.Empty(t, q.SystemEntityCandidates(nil))
}
