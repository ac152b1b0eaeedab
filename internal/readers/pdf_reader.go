// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"spanmark/internal/observability"
)

// maxPDFPages bounds extraction for very large documents.
const maxPDFPages = 50

// PDFReader extracts text from PDF documents. Files are validated with
// pdfcpu before extraction so a corrupt document fails fast with a clear
// error instead of a partial read.
type PDFReader struct {
	name      string
	pdfConfig *model.Configuration
	observer  *observability.StandardObserver
}

// NewPDFReader creates a PDF reader with relaxed validation.
func NewPDFReader() *PDFReader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFReader{
		name:      "PDF Reader",
		pdfConfig: conf,
	}
}

// SetObserver sets the diagnostics sink.
func (pr *PDFReader) SetObserver(observer *observability.StandardObserver) {
	pr.observer = observer
}

// Name returns the name of this reader.
func (pr *PDFReader) Name() string {
	return pr.name
}

// SupportedExtensions returns the extensions this reader supports.
func (pr *PDFReader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// CanRead checks if this reader handles the given file.
func (pr *PDFReader) CanRead(filePath string) bool {
	return extensionMatches(filePath, pr.SupportedExtensions())
}

// Read validates the PDF and extracts its text page by page.
func (pr *PDFReader) Read(filePath string) (*Document, error) {
	var finishTiming func(bool, map[string]interface{})
	if pr.observer != nil {
		finishTiming = pr.observer.StartTiming("pdf_reader", "read_file", filePath)
	}

	doc, err := pr.read(filePath)
	if finishTiming != nil {
		meta := map[string]interface{}{}
		if doc != nil {
			meta["page_count"] = doc.PageCount
			meta["char_count"] = doc.CharCount
		}
		if err != nil {
			meta["error"] = err.Error()
		}
		finishTiming(err == nil, meta)
	}
	return doc, err
}

func (pr *PDFReader) read(filePath string) (*Document, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("pdf file not accessible: %w", err)
	}

	if err := api.ValidateFile(filePath, pr.pdfConfig); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	extracted := pageCount
	if extracted > maxPDFPages {
		extracted = maxPDFPages
	}

	var buf strings.Builder
	failedPages := 0
	for i := 1; i <= extracted; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			failedPages++
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			failedPages++
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	if buf.Len() == 0 && failedPages > 0 {
		return nil, fmt.Errorf("no text extracted from PDF (%d pages failed)", failedPages)
	}

	doc := &Document{
		Path:      filePath,
		Text:      buf.String(),
		Format:    "pdf",
		PageCount: pageCount,
	}
	fillCounts(doc)
	return doc, nil
}
