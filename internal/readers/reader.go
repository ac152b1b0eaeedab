// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package readers loads the raw text to annotate from documents on disk.
package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"spanmark/internal/observability"
)

// Document is the raw text loaded from a file, with basic content metadata.
type Document struct {
	Path      string
	Text      string
	Format    string
	PageCount int
	WordCount int
	CharCount int
	LineCount int
}

// Reader loads documents of a particular format.
type Reader interface {
	// CanRead checks if this reader handles the given file.
	CanRead(filePath string) bool

	// Read loads the document's text content.
	Read(filePath string) (*Document, error)

	// Name returns the name of this reader.
	Name() string

	// SupportedExtensions returns the file extensions this reader supports.
	SupportedExtensions() []string

	// SetObserver sets the diagnostics sink.
	SetObserver(observer *observability.StandardObserver)
}

// Manager routes files to the appropriate reader.
type Manager struct {
	readers []Reader
}

// NewManager creates a manager with the default readers registered: PDF
// first, then plain text as the fallback.
func NewManager() *Manager {
	m := &Manager{}
	m.Register(NewPDFReader())
	m.Register(NewTextReader())
	return m
}

// Register adds a reader to the manager. Readers are consulted in
// registration order.
func (m *Manager) Register(r Reader) {
	m.readers = append(m.readers, r)
}

// SetObserver sets the diagnostics sink on every registered reader.
func (m *Manager) SetObserver(observer *observability.StandardObserver) {
	for _, r := range m.readers {
		r.SetObserver(observer)
	}
}

// Read loads the document using the first reader that can handle the file.
func (m *Manager) Read(filePath string) (*Document, error) {
	for _, r := range m.readers {
		if r.CanRead(filePath) {
			return r.Read(filePath)
		}
	}
	return nil, fmt.Errorf("no reader for file type: %s", filePath)
}

// fillCounts populates the derived word, character, and line counts.
func fillCounts(doc *Document) {
	doc.WordCount = len(strings.Fields(doc.Text))
	doc.CharCount = len(doc.Text)
	doc.LineCount = strings.Count(doc.Text, "\n") + 1
}

// extensionMatches checks a path against a supported extension list.
func extensionMatches(filePath string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, supported := range extensions {
		if ext == supported {
			return true
		}
	}
	return false
}
