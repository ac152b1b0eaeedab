// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spanmark/internal/span"
)

func TestProcessedQueryToDict(t *testing.T) {
	q := buildQuery(t, "order 42 pizzas")
	qe, err := NewEntityFromRawSpan(q, NewEntity("sys:number"), span.New(6, 7))
	require.NoError(t, err)

	pq := &ProcessedQuery{
		Query:    q,
		Domain:   "ordering",
		Intent:   "place_order",
		Entities: []*QueryEntity{qe},
		IsGold:   true,
	}

	d := pq.ToDict()
	assert.Equal(t, "order 42 pizzas", d["text"])
	assert.Equal(t, "ordering", d["domain"])
	assert.Equal(t, "place_order", d["intent"])

	entities, ok := d["entities"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, entities, 1)
	assert.Equal(t, "42", entities[0]["text"])
}

func TestProcessedQueryString(t *testing.T) {
	q := buildQuery(t, "hi")
	pq := &ProcessedQuery{Query: q, Domain: "smalltalk", Intent: "greet", IsGold: true}

	s := pq.String()
	assert.Contains(t, s, `domain: "smalltalk"`)
	assert.Contains(t, s, "gold")
}
