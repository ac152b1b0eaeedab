// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package tokenizer

import (
	"strings"
	"unicode"

	"spanmark/internal/span"
)

// Token is a single whitespace-delimited token produced by a tokenizer.
// Entity holds the normalized token text and is the field downstream
// components rely on; Raw preserves the token as it appeared in the input.
type Token struct {
	Entity string
	Raw    string
}

// Tokenizer splits processed text into tokens, normalizes text, and reports
// the character index correspondence between processed and normalized text.
// All indices are byte offsets into the respective strings.
type DefaultTokenizer struct{}

// NewDefaultTokenizer creates a tokenizer with the default normalization
// rules: lowercasing, punctuation stripping, and whitespace collapsing.
func NewDefaultTokenizer() *DefaultTokenizer {
	return &DefaultTokenizer{}
}

// Normalize canonicalizes text: lowercases it, replaces punctuation other
// than in-word apostrophes with spaces, and collapses whitespace runs.
func (t *DefaultTokenizer) Normalize(text string) string {
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits text on whitespace. When normalize is true each token's
// Entity field holds its normalized form and tokens that normalize to the
// empty string are dropped; otherwise Entity mirrors the raw token.
func (t *DefaultTokenizer) Tokenize(text string, normalize bool) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		entity := field
		if normalize {
			entity = t.Normalize(field)
			if entity == "" {
				continue
			}
		}
		tokens = append(tokens, Token{Entity: entity, Raw: field})
	}
	return tokens
}

// tokenOffset pairs a token with its byte offset in the source string.
type tokenOffset struct {
	text  string
	start int
}

// CharIndexMap builds the forward (processed to normalized) and backward
// (normalized to processed) character index maps. The normalized layout is
// reconstructed from the processed text so the two maps stay consistent with
// the tokens this tokenizer produces; the normalized argument is only used
// to detect the identity case. Returns nil maps when the texts are equal,
// since identical forms need no correspondence.
func (t *DefaultTokenizer) CharIndexMap(processed, normalized string) (span.CharMap, span.CharMap) {
	if processed == normalized {
		return nil, nil
	}

	procTokens := fieldsWithOffsets(processed)
	if len(procTokens) == 0 {
		// Nothing survives normalization; map every processed index to the
		// origin of the (empty) normalized text.
		forward := make(span.CharMap, len(processed))
		for i := range processed {
			forward[i] = 0
		}
		return forward, span.CharMap{}
	}

	forward := make(span.CharMap, len(processed))
	backward := make(span.CharMap, len(normalized))

	normOffset := 0
	lastNormIndex := 0
	cursor := 0
	for _, tok := range procTokens {
		entity := t.Normalize(tok.text)

		// Processed characters before this token map to the separator (or
		// the start of the normalized text for the leading gap).
		gapTarget := normOffset
		if normOffset > 0 {
			gapTarget = normOffset - 1
		}
		for i := cursor; i < tok.start; i++ {
			forward[i] = gapTarget
		}

		if entity == "" {
			// Token vanished during normalization; its characters collapse
			// onto the nearest surviving normalized position.
			for i := tok.start; i < tok.start+len(tok.text); i++ {
				forward[i] = gapTarget
			}
			cursor = tok.start + len(tok.text)
			continue
		}

		if normOffset > 0 {
			// The single joining space points back at the gap it replaced.
			backward[normOffset-1] = cursor
		}

		for k := 0; k < len(tok.text); k++ {
			target := k
			if target > len(entity)-1 {
				target = len(entity) - 1
			}
			forward[tok.start+k] = normOffset + target
		}
		for k := 0; k < len(entity); k++ {
			source := k
			if source > len(tok.text)-1 {
				source = len(tok.text) - 1
			}
			backward[normOffset+k] = tok.start + source
		}

		lastNormIndex = normOffset + len(entity) - 1
		normOffset += len(entity) + 1
		cursor = tok.start + len(tok.text)
	}

	// Trailing processed characters map to the final normalized index.
	for i := cursor; i < len(processed); i++ {
		forward[i] = lastNormIndex
	}

	return forward, backward
}

// fieldsWithOffsets splits on whitespace, retaining each token's byte offset.
func fieldsWithOffsets(text string) []tokenOffset {
	var tokens []tokenOffset
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, tokenOffset{text: text[start:i], start: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, tokenOffset{text: text[start:], start: start})
	}
	return tokens
}
