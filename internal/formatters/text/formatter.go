// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"spanmark/internal/formatters"
	"spanmark/internal/query"
)

// Formatter implements human-readable text output formatting
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with color-coded confidence levels"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

// confidenceLevel buckets a confidence score for display.
func confidenceLevel(confidence *float64) string {
	if confidence == nil {
		return "none"
	}
	switch {
	case *confidence >= 0.8:
		return "high"
	case *confidence >= 0.5:
		return "medium"
	default:
		return "low"
	}
}

// Color functions for different confidence levels
var confidenceColors = map[string]*color.Color{
	"high":   color.New(color.FgGreen),
	"medium": color.New(color.FgYellow),
	"low":    color.New(color.FgRed),
	"none":   color.New(color.FgWhite),
}

func (f *Formatter) Format(result *formatters.Result, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	entities := formatters.FilterByConfidence(result.Entities, options.MinConfidence)

	var output strings.Builder

	if result.Source != "" {
		output.WriteString(fmt.Sprintf("Source: %s\n", result.Source))
	}
	output.WriteString(fmt.Sprintf("Text: %s\n", result.Query.Text()))
	if options.Verbose {
		output.WriteString(fmt.Sprintf("Processed: %s\n", result.Query.ProcessedText()))
		output.WriteString(fmt.Sprintf("Normalized: %s\n", result.Query.NormalizedText()))
	}
	output.WriteString("\n")

	if len(entities) == 0 {
		output.WriteString("No entities found.\n")
		return output.String(), nil
	}

	output.WriteString(fmt.Sprintf("Found %d entities", len(entities)))
	if result.RemovedCount > 0 {
		output.WriteString(fmt.Sprintf(" (%d removed as conflicts)", result.RemovedCount))
	}
	output.WriteString(":\n\n")

	// Group entities by type for a stable, scannable report.
	byType := make(map[string][]*query.QueryEntity)
	for _, e := range entities {
		byType[e.Entity().Type] = append(byType[e.Entity().Type], e)
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		output.WriteString(fmt.Sprintf("%s:\n", t))
		for _, e := range byType[t] {
			level := confidenceLevel(e.Entity().Confidence)
			colorFunc := confidenceColors[level]

			line := fmt.Sprintf("  %s %s", e.Span().String(), e.Text())
			if e.Entity().Confidence != nil {
				line += fmt.Sprintf(" (confidence: %.2f)", *e.Entity().Confidence)
			}
			if e.Entity().Role != "" {
				line += fmt.Sprintf(" [role: %s]", e.Entity().Role)
			}
			output.WriteString(colorFunc.Sprint(line))
			output.WriteString("\n")

			if options.Verbose {
				procSpan := e.SpanFor(query.FormProcessed)
				output.WriteString(fmt.Sprintf("    processed: %s %q\n", procSpan.String(), e.TextFor(query.FormProcessed)))
				normSpan := e.SpanFor(query.FormNormalized)
				output.WriteString(fmt.Sprintf("    normalized: %s %q\n", normSpan.String(), e.TextFor(query.FormNormalized)))
				tokenSpan := e.TokenSpanFor(query.FormNormalized)
				output.WriteString(fmt.Sprintf("    tokens: %s\n", tokenSpan.String()))
			}
		}
		output.WriteString("\n")
	}

	return strings.TrimRight(output.String(), "\n") + "\n", nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
