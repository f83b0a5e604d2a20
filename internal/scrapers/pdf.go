// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scrapers

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"chakri-scan/internal/job"
)

// pdfMaxPages caps extraction for oversized circulars; real recruitment
// notices fit in a handful of pages.
const pdfMaxPages = 50

// PDFCircular ingests recruitment circular PDFs into raw records.
type PDFCircular struct {
	pdfConfig *model.Configuration
}

// NewPDFCircular creates a PDF circular reader.
func NewPDFCircular() *PDFCircular {
	return &PDFCircular{
		pdfConfig: model.NewDefaultConfiguration(),
	}
}

// Read validates the file as a well-formed PDF and extracts its text into a
// single RawRecord: first non-empty line becomes the candidate title, the
// full text becomes the description for field extraction downstream.
func (p *PDFCircular) Read(filePath string) (job.RawRecord, error) {
	if err := api.ValidateFile(filePath, p.pdfConfig); err != nil {
		return job.RawRecord{}, fmt.Errorf("invalid PDF %s: %w", filepath.Base(filePath), err)
	}

	text, err := p.extractText(filePath)
	if err != nil {
		return job.RawRecord{}, err
	}
	if strings.TrimSpace(text) == "" {
		return job.RawRecord{}, fmt.Errorf("no extractable text in %s", filepath.Base(filePath))
	}

	record := job.RawRecord{
		Description: text,
		SourceURL:   filePath,
		SourceSite:  "pdf-circular",
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			record.Title = line
			break
		}
	}

	return record, nil
}

func (p *PDFCircular) extractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > pdfMaxPages {
		pageCount = pdfMaxPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page should not lose the rest of the circular.
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}

	return cleanExtractedText(buf.String()), nil
}

// cleanExtractedText trims each line and drops empties while keeping line
// structure, so "Post: Assistant Engineer" style rows stay intact for the
// extractor.
func cleanExtractedText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
