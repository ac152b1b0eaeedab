// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"strings"

	"spanmark/internal/query"
)

// Result is the annotated query handed to formatters: the query itself, the
// entities that survived conflict resolution, and bookkeeping about the run.
type Result struct {
	Query        *query.Query
	Entities     []*query.QueryEntity
	RemovedCount int
	Source       string
}

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose       bool    // Whether to display detailed information
	NoColor       bool    // Whether to disable colored output
	MinConfidence float64 // Entities below this confidence are hidden
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the annotation result in the formatter's output format
	Format(result *Result, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "yaml")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders the result with the named formatter from the default
// registry.
func Export(format string, result *Result, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(result, options)
}

// FilterByConfidence returns the entities at or above the minimum
// confidence. Entities without a confidence score always pass.
func FilterByConfidence(entities []*query.QueryEntity, min float64) []*query.QueryEntity {
	if min <= 0 {
		return entities
	}
	var filtered []*query.QueryEntity
	for _, e := range entities {
		if c := e.Entity().Confidence; c == nil || *c >= min {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ConvertResult builds the serializable projection shared by the structured
// formatters so JSON and YAML output stay field-for-field identical.
func ConvertResult(result *Result, options FormatterOptions) map[string]interface{} {
	entities := FilterByConfidence(result.Entities, options.MinConfidence)
	entityDicts := make([]map[string]interface{}, len(entities))
	for i, e := range entities {
		entityDicts[i] = e.ToDict()
	}

	projection := map[string]interface{}{
		"text":          result.Query.Text(),
		"entities":      entityDicts,
		"entity_count":  len(entityDicts),
		"removed_count": result.RemovedCount,
	}
	if result.Source != "" {
		projection["source"] = result.Source
	}
	if options.Verbose {
		projection["processed_text"] = result.Query.ProcessedText()
		projection["normalized_text"] = result.Query.NormalizedText()
		projection["tokens"] = result.Query.NormalizedTokens()
	}
	return projection
}
