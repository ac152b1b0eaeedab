// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spanmark/internal/formatters"
	"spanmark/internal/query"
	"spanmark/internal/span"
	"spanmark/internal/tokenizer"
)

func buildResult(t *testing.T) *formatters.Result {
	t.Helper()
	factory := query.NewQueryFactory(nil, tokenizer.NewDefaultTokenizer(), nil)
	q := factory.Create("order 42 pizzas")

	qe, err := query.NewEntityFromRawSpan(q, query.NewEntity("sys:number").WithValue(42.0).WithConfidence(0.7), span.New(6, 7))
	require.NoError(t, err)

	return &formatters.Result{Query: q, Entities: []*query.QueryEntity{qe}}
}

func TestFormatterMetadata(t *testing.T) {
	f := NewFormatter()
	assert.Equal(t, "json", f.Name())
	assert.Equal(t, ".json", f.FileExtension())
	assert.NotEmpty(t, f.Description())
}

func TestFormatProducesValidJSON(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(buildResult(t), formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "order 42 pizzas", decoded["text"])
	assert.Equal(t, float64(1), decoded["entity_count"])

	entities, ok := decoded["entities"].([]interface{})
	require.True(t, ok)
	require.Len(t, entities, 1)

	entity, ok := entities[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sys:number", entity["type"])
	assert.Equal(t, "42", entity["text"])
	assert.Equal(t, 0.7, entity["confidence"])

	entitySpan, ok := entity["span"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(6), entitySpan["start"])
	assert.Equal(t, float64(7), entitySpan["end"])
}

func TestFormatterIsRegistered(t *testing.T) {
	f, exists := formatters.Get("json")
	require.True(t, exists)
	assert.Equal(t, "json", f.Name())
}
