// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"spanmark/internal/span"
	"spanmark/internal/tokenizer"
)

// Preprocessor rewrites raw text before tokenization and reports the
// character index correspondence between the raw and processed forms. Either
// returned map may be nil, meaning the forms line up index for index.
type Preprocessor interface {
	Process(rawText string) string
	CharIndexMap(rawText, processedText string) (forward, backward span.CharMap)
}

// Tokenizer splits and canonicalizes processed text and reports the
// character index correspondence between the processed and normalized forms.
type Tokenizer interface {
	Tokenize(text string, normalize bool) []tokenizer.Token
	Normalize(text string) string
	CharIndexMap(processedText, normalizedText string) (forward, backward span.CharMap)
}

// SystemEntityRecognizer proposes system entity candidates for a freshly
// built query. It is invoked exactly once per query, during construction.
type SystemEntityRecognizer interface {
	Candidates(q *Query) []*QueryEntity
}

// QueryFactory encapsulates the collaborators needed to build queries: a
// tokenizer, an optional preprocessor, and an optional system entity
// recognizer.
type QueryFactory struct {
	recognizer   SystemEntityRecognizer
	tokenizer    Tokenizer
	preprocessor Preprocessor
}

// NewQueryFactory creates a factory. The tokenizer is required; recognizer
// and preprocessor may be nil, in which case no candidates are attached and
// the processed text equals the raw text.
func NewQueryFactory(recognizer SystemEntityRecognizer, tok Tokenizer, pre Preprocessor) *QueryFactory {
	return &QueryFactory{recognizer: recognizer, tokenizer: tok, preprocessor: pre}
}

// Create builds a query for the given text: it runs the preprocessor,
// tokenizes and normalizes the processed text, collects the character maps
// between adjacent forms, and attaches system entity candidates.
func (f *QueryFactory) Create(text string) *Query {
	raw := text
	processed := raw
	var maps CharMaps

	if f.preprocessor != nil {
		processed = f.preprocessor.Process(raw)
		maps.RawToProcessed, maps.ProcessedToRaw = f.preprocessor.CharIndexMap(raw, processed)
	}

	tokens := f.tokenizer.Tokenize(processed, true)
	maps.ProcessedToNormalized, maps.NormalizedToProcessed = f.tokenizer.CharIndexMap(processed, joinTokenEntities(tokens))

	q := NewQuery(raw, processed, tokens, maps)
	if f.recognizer != nil {
		q.AttachSystemEntityCandidates(f.recognizer.Candidates(q))
	}
	return q
}

// Normalize normalizes text using the factory's tokenizer.
func (f *QueryFactory) Normalize(text string) string {
	return f.tokenizer.Normalize(text)
}
