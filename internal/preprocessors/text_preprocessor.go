// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors provides the default text preprocessor: a
// character-folding pass that runs before tokenization and reports the
// character index correspondence between the raw and processed text.
package preprocessors

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"spanmark/internal/span"
)

// TextPreprocessor rewrites raw text by folding typographic punctuation to
// ASCII, converting all whitespace to plain spaces, collapsing whitespace
// runs, and trimming the ends. All indices in the maps it reports are byte
// offsets.
type TextPreprocessor struct {
	replacements       map[rune]rune
	collapseWhitespace bool
	trim               bool
}

// NewTextPreprocessor creates a preprocessor with the default folding rules.
func NewTextPreprocessor() *TextPreprocessor {
	return &TextPreprocessor{
		replacements: map[rune]rune{
			'‘': '\'', // left single quote
			'’': '\'', // right single quote
			'“': '"',  // left double quote
			'”': '"',  // right double quote
			'–': '-',  // en dash
			'—': '-',  // em dash
			' ': ' ',  // non-breaking space
		},
		collapseWhitespace: true,
		trim:               true,
	}
}

// WithCollapseWhitespace toggles whitespace-run collapsing.
func (p *TextPreprocessor) WithCollapseWhitespace(collapse bool) *TextPreprocessor {
	p.collapseWhitespace = collapse
	return p
}

// WithTrim toggles trimming of leading and trailing whitespace.
func (p *TextPreprocessor) WithTrim(trim bool) *TextPreprocessor {
	p.trim = trim
	return p
}

// Process returns the processed form of the raw text.
func (p *TextPreprocessor) Process(rawText string) string {
	processed, _, _ := p.transform(rawText)
	return processed
}

// CharIndexMap reports the forward (raw to processed) and backward
// (processed to raw) character index maps. When the processed text equals
// the raw text both maps are nil, signalling an identity correspondence.
func (p *TextPreprocessor) CharIndexMap(rawText, processedText string) (span.CharMap, span.CharMap) {
	processed, forward, backward := p.transform(rawText)
	if processed == rawText {
		return nil, nil
	}
	return forward, backward
}

// emitted records the fate of a single input rune.
type emitted struct {
	rawStart int
	rawLen   int
	out      rune
	keep     bool
}

// transform applies the folding rules and builds the index maps in a single
// pass so the processed text and the maps can never disagree. Characters
// dropped by collapsing or trimming map to the nearest preceding surviving
// character (or to index 0 for a leading drop).
func (p *TextPreprocessor) transform(raw string) (string, span.CharMap, span.CharMap) {
	var emits []emitted
	prevKeptSpace := false
	keptAny := false

	for i, r := range raw {
		out := r
		if rep, ok := p.replacements[r]; ok {
			out = rep
		}

		keep := true
		if unicode.IsSpace(out) {
			out = ' '
			if p.collapseWhitespace && prevKeptSpace {
				keep = false
			}
			if p.trim && !keptAny {
				keep = false
			}
		}

		emits = append(emits, emitted{rawStart: i, rawLen: utf8.RuneLen(r), out: out, keep: keep})
		if keep {
			prevKeptSpace = out == ' '
			keptAny = true
		}
	}

	if p.trim {
		for k := len(emits) - 1; k >= 0; k-- {
			if !emits[k].keep {
				continue
			}
			if emits[k].out != ' ' {
				break
			}
			emits[k].keep = false
		}
	}

	var b strings.Builder
	forward := make(span.CharMap, len(raw))
	backward := make(span.CharMap)
	lastKeptStart := 0

	for _, e := range emits {
		if e.keep {
			start := b.Len()
			b.WriteRune(e.out)
			for k := 0; k < e.rawLen; k++ {
				forward[e.rawStart+k] = start
			}
			for k := 0; k < utf8.RuneLen(e.out); k++ {
				backward[start+k] = e.rawStart
			}
			lastKeptStart = start
			continue
		}
		for k := 0; k < e.rawLen; k++ {
			forward[e.rawStart+k] = lastKeptStart
		}
	}

	return b.String(), forward, backward
}
