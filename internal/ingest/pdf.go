// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/review-engine/pkg/types"
)

// ExtractPDF extracts plain text from a PDF file page by page,
// inserting "--- Page N ---" markers between pages, and reads the
// document information dictionary best-effort. A malformed file yields
// an error, never a panic; the pdf library panics on some corrupt
// inputs, so extraction runs behind a recover.
func ExtractPDF(path string) (doc types.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = types.Document{}
			err = fmt.Errorf("extracting %s: malformed PDF: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; partial text beats none.
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n%s", i, text)
	}

	return types.Document{
		ID:        path,
		RawText:   b.String(),
		PageCount: pages,
		Metadata:  pdfMetadata(reader),
	}, nil
}

// pdfMetadata reads title, author, and creation date from the document
// information dictionary. Missing entries stay empty.
func pdfMetadata(reader *pdf.Reader) types.DocumentMetadata {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return types.DocumentMetadata{}
	}
	return types.DocumentMetadata{
		Title:        infoString(info, "Title"),
		Author:       infoString(info, "Author"),
		CreationDate: infoString(info, "CreationDate"),
	}
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return v.RawString()
}
