package object

import (
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	if _, err := SanitizeFileName("../escape.pdf"); err == nil {
		t.Fatal("expected error for traversal name")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}

	got, err := SanitizeFileName("acme/resume.pdf")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "acme_resume.pdf" {
		t.Fatalf("got %q, want %q", got, "acme_resume.pdf")
	}
}

func TestBuildKeyNamespacesByOwner(t *testing.T) {
	t.Parallel()

	key, err := BuildKey("user-1", "resume.pdf")
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	if !strings.HasPrefix(key, OwnerKey("user-1")+"/") {
		t.Fatalf("key %q not under owner namespace", key)
	}
	if !strings.HasSuffix(key, "_resume.pdf") {
		t.Fatalf("key %q missing file name suffix", key)
	}

	other, err := BuildKey("user-1", "resume.pdf")
	if err != nil {
		t.Fatalf("build key: %v", err)
	}
	if other == key {
		t.Fatal("expected distinct keys for repeated saves")
	}
}
