// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessFoldsPunctuation(t *testing.T) {
	p := NewTextPreprocessor()

	assert.Equal(t, "don't", p.Process("don’t"))
	assert.Equal(t, "\"quoted\"", p.Process("“quoted”"))
	assert.Equal(t, "a - b", p.Process("a — b"))
}

func TestProcessCollapsesAndTrims(t *testing.T) {
	p := NewTextPreprocessor()

	assert.Equal(t, "Hello world", p.Process("  Hello   world  "))
	assert.Equal(t, "a b", p.Process("a\t\nb"))
}

func TestProcessToggles(t *testing.T) {
	p := NewTextPreprocessor().WithCollapseWhitespace(false).WithTrim(false)

	// Whitespace is still folded to plain spaces, but nothing is dropped.
	assert.Equal(t, "  a   b ", p.Process("\t a \n\nb "))
}

func TestCharIndexMapIdentity(t *testing.T) {
	p := NewTextPreprocessor()

	forward, backward := p.CharIndexMap("already clean", "already clean")
	assert.Nil(t, forward)
	assert.Nil(t, backward)
}

func TestCharIndexMapLeadingTrim(t *testing.T) {
	p := NewTextPreprocessor()

	raw := "  Hi"
	require.Equal(t, "Hi", p.Process(raw))

	forward, backward := p.CharIndexMap(raw, "Hi")
	require.NotNil(t, forward)
	require.NotNil(t, backward)

	// Dropped leading whitespace maps to the start of the processed text.
	assert.Equal(t, 0, forward[0])
	assert.Equal(t, 0, forward[1])
	assert.Equal(t, 0, forward[2])
	assert.Equal(t, 1, forward[3])

	assert.Equal(t, 2, backward[0])
	assert.Equal(t, 3, backward[1])
}

func TestCharIndexMapMultiByteFold(t *testing.T) {
	p := NewTextPreprocessor()

	raw := "don’t"
	require.Equal(t, "don't", p.Process(raw))

	forward, backward := p.CharIndexMap(raw, "don't")
	require.NotNil(t, forward)

	// The three bytes of the curly quote all land on the ASCII apostrophe.
	assert.Equal(t, 3, forward[3])
	assert.Equal(t, 3, forward[4])
	assert.Equal(t, 3, forward[5])
	assert.Equal(t, 4, forward[6])

	assert.Equal(t, 3, backward[3])
	assert.Equal(t, 6, backward[4])
}

func TestCharIndexMapCollapsedRun(t *testing.T) {
	p := NewTextPreprocessor()

	raw := "a   b"
	require.Equal(t, "a b", p.Process(raw))

	forward, backward := p.CharIndexMap(raw, "a b")
	require.NotNil(t, forward)

	assert.Equal(t, 0, forward[0])
	assert.Equal(t, 1, forward[1])
	// Collapsed spaces map to the kept space before them.
	assert.Equal(t, 1, forward[2])
	assert.Equal(t, 1, forward[3])
	assert.Equal(t, 2, forward[4])

	assert.Equal(t, 1, backward[1])
	assert.Equal(t, 4, backward[2])
}
