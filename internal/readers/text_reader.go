// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"fmt"
	"os"
	"path/filepath"

	"spanmark/internal/observability"
)

// TextReader loads plain text files. It accepts any extension, so it acts as
// the fallback reader and must be registered last.
type TextReader struct {
	name     string
	observer *observability.StandardObserver
}

// NewTextReader creates a plain text reader.
func NewTextReader() *TextReader {
	return &TextReader{name: "Plain Text Reader"}
}

// SetObserver sets the diagnostics sink.
func (tr *TextReader) SetObserver(observer *observability.StandardObserver) {
	tr.observer = observer
}

// Name returns the name of this reader.
func (tr *TextReader) Name() string {
	return tr.name
}

// SupportedExtensions returns the extensions this reader is intended for.
func (tr *TextReader) SupportedExtensions() []string {
	return []string{".txt", ".md", ".log", ".csv"}
}

// CanRead accepts every file; text is the fallback format.
func (tr *TextReader) CanRead(filePath string) bool {
	return true
}

// Read loads the file contents as UTF-8 text.
func (tr *TextReader) Read(filePath string) (*Document, error) {
	var finishTiming func(bool, map[string]interface{})
	if tr.observer != nil {
		finishTiming = tr.observer.StartTiming("text_reader", "read_file", filePath)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	doc := &Document{
		Path:   filePath,
		Text:   string(data),
		Format: "text",
	}
	fillCounts(doc)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"char_count": doc.CharCount})
	}
	return doc, nil
}
