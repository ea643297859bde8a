// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package paper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerifyMissingFile(t *testing.T) {
	_, err := Verify(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}

func TestVerifyDirectory(t *testing.T) {
	if _, err := Verify(t.TempDir()); err == nil {
		t.Fatal("want error for directory input")
	}
}

func TestVerifyNonPDFProbesToZeroPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := Verify(path)
	if err != nil {
		t.Fatalf("probe failure must not be fatal: %v", err)
	}
	if info.Pages != 0 {
		t.Errorf("pages = %d, want 0", info.Pages)
	}
	if info.Bytes == 0 {
		t.Error("size should be recorded")
	}
}

func TestTextNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Text(path); err == nil {
		t.Fatal("want error extracting text from a non-PDF")
	}
}
