// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paper validates and probes input PDFs. The pipeline never
// interprets paper content itself; this package only confirms the input
// exists before the generator is contacted and, for backends that cannot
// read local files, lifts the embedded text layer out of the PDF.
// Implements: prd001-plan-generation (R1.1);
//
//	docs/ARCHITECTURE § Input Handling.
package paper

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Info describes a verified input file.
type Info struct {
	// Path is the input path as given.
	Path string

	// Bytes is the file size.
	Bytes int64

	// Pages is the PDF page count, or zero when the probe failed.
	Pages int
}

// Verify checks that the input file exists and probes it as a PDF.
// A missing file or a directory is an error; a file that does not probe
// as a PDF is not — Pages stays zero so callers can warn and proceed,
// since the generator may still handle the file.
func Verify(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, fmt.Errorf("input file not found: %s", path)
		}
		return Info{}, fmt.Errorf("stat input %s: %w", path, err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("input %s is a directory, want a PDF file", path)
	}

	info := Info{Path: path, Bytes: st.Size()}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return info, nil
	}
	defer f.Close()

	info.Pages = reader.NumPage()
	return info, nil
}

// Text extracts the embedded text layer of the PDF, page by page, with
// <!-- page N --> markers at page boundaries so downstream prompts can
// carry page numbers for evidence citations. Pages whose text cannot be
// decoded are skipped.
func Text(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "<!-- page %d -->\n", i)
		b.WriteString(strings.TrimSpace(text))
		b.WriteString("\n\n")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("no extractable text in %s", path)
	}
	return out, nil
}
