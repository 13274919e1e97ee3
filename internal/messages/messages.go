package messages

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Adda-Baaj/hasi/internal/domain"

	"gopkg.in/yaml.v3"
)

// Package messages resolves user-facing strings by id and locale.

const DefaultLocale = "en"

var builtin = map[string]map[string]string{
	DefaultLocale: {
		domain.MessageNoConnection:       "No connection. Check your network and try again.",
		domain.MessageServiceUnavailable: "Service unavailable. Please try again later.",
	},
}

// catalogFile represents the structure of the messages file.
type catalogFile struct {
	DefaultLocale string                       `json:"default_locale" yaml:"default_locale"`
	Locales       map[string]map[string]string `json:"locales" yaml:"locales"`
}

// Catalog is a read-only id->string table for one active locale.
type Catalog struct {
	mu            sync.RWMutex
	locale        string
	defaultLocale string
	locales       map[string]map[string]string
}

// Default returns the built-in English catalog.
func Default() *Catalog {
	c, _ := newCatalog(catalogFile{DefaultLocale: DefaultLocale}, "")
	return c
}

// Load reads a YAML/JSON messages file and selects locale (or the file's default).
// An empty path yields the built-in catalog.
func Load(path, locale string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		c := Default()
		c.SetLocale(locale)
		return c, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open messages file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read messages file: %w", err)
	}

	parsed, err := parseCatalog(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Locales) == 0 {
		return nil, errors.New("messages file contains no locales")
	}

	return newCatalog(parsed, locale)
}

func newCatalog(f catalogFile, locale string) (*Catalog, error) {
	locales := make(map[string]map[string]string, len(builtin)+len(f.Locales))
	for loc, entries := range builtin {
		locales[loc] = copyEntries(entries)
	}
	for loc, entries := range f.Locales {
		key := normalizeLocale(loc)
		if key == "" {
			return nil, errors.New("messages file has an empty locale key")
		}
		if locales[key] == nil {
			locales[key] = make(map[string]string, len(entries))
		}
		for id, text := range entries {
			id = strings.TrimSpace(id)
			if id == "" || strings.TrimSpace(text) == "" {
				continue
			}
			locales[key][id] = text
		}
	}

	def := normalizeLocale(f.DefaultLocale)
	if def == "" {
		def = DefaultLocale
	}
	if _, ok := locales[def]; !ok {
		return nil, fmt.Errorf("default locale %q has no messages", def)
	}

	c := &Catalog{defaultLocale: def, locale: def, locales: locales}
	c.SetLocale(locale)
	return c, nil
}

func parseCatalog(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var f catalogFile
		if err := d.fn(data, &f); err == nil {
			return f, nil
		}
	}

	return catalogFile{}, errors.New("messages file format not recognized (expected YAML or JSON)")
}

// SetLocale switches the active locale. Unknown or empty locales keep the default.
func (c *Catalog) SetLocale(locale string) {
	key := normalizeLocale(locale)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.locales[key]; ok {
		c.locale = key
		return
	}
	// "bn-IN" falls back to "bn".
	if base, _, found := strings.Cut(key, "-"); found {
		if _, ok := c.locales[base]; ok {
			c.locale = base
			return
		}
	}
	c.locale = c.defaultLocale
}

// Locale returns the active locale.
func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// GetString resolves id in the active locale, then the default locale, then
// returns the id itself.
func (c *Catalog) GetString(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if text, ok := c.locales[c.locale][id]; ok {
		return text
	}
	if text, ok := c.locales[c.defaultLocale][id]; ok {
		return text
	}
	return id
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(locale)), "_", "-")
}

func copyEntries(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
