package messages

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Adda-Baaj/hasi/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if got := c.GetString(domain.MessageNoConnection); got != builtin[DefaultLocale][domain.MessageNoConnection] {
		t.Fatalf("unexpected no_connection text %q", got)
	}
	if got := c.GetString("unknown_id"); got != "unknown_id" {
		t.Fatalf("unknown ids should echo back, got %q", got)
	}
}

func TestLoadYAMLWithLocaleFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	raw := `
default_locale: en
locales:
  en:
    no_connection: "You are offline"
  bn:
    no_connection: "সংযোগ নেই"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write messages file: %v", err)
	}

	c, err := Load(path, "bn_IN")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Locale() != "bn" {
		t.Fatalf("expected bn locale, got %q", c.Locale())
	}
	if got := c.GetString(domain.MessageNoConnection); got != "সংযোগ নেই" {
		t.Fatalf("unexpected bn text %q", got)
	}
	// Missing in bn, falls back to en, which keeps the built-in entry.
	if got := c.GetString(domain.MessageServiceUnavailable); got != builtin[DefaultLocale][domain.MessageServiceUnavailable] {
		t.Fatalf("unexpected fallback text %q", got)
	}

	c.SetLocale("fr")
	if got := c.GetString(domain.MessageNoConnection); got != "You are offline" {
		t.Fatalf("unknown locale should use default, got %q", got)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.json")
	raw := `{"locales":{"en":{"service_unavailable":"Down"}}}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write messages file: %v", err)
	}

	c, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.GetString(domain.MessageServiceUnavailable); got != "Down" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("default_locale: en\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(empty, ""); err == nil {
		t.Fatalf("expected error for file without locales")
	}

	badDefault := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badDefault, []byte("default_locale: de\nlocales:\n  fr:\n    no_connection: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(badDefault, ""); err == nil {
		t.Fatalf("expected error for default locale without messages")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
