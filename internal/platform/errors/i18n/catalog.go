// Package i18n renders localized error messages from the "errors" catalog
// namespace. Messages are text/template bodies fed with error metadata.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/postdesk/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code. It mirrors errors.Code, which
// cannot be imported here without a cycle.
type Code = string

// Namespace is the catalog namespace holding error templates.
const Namespace = "errors"

// Catalog holds the parsed error templates of one locale.
type Catalog struct {
	locale    string
	templates map[Code]*template.Template
	raw       map[Code]string
}

var (
	mu    sync.RWMutex
	cache = map[string]*Catalog{}
)

// GetCatalog returns the catalog for locale, falling back to the base
// locale when the locale has no error messages.
func GetCatalog(locale string) *Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = i18ncatalog.BaseLocale
	}
	if c, ok := cached(locale); ok {
		return c
	}
	resolved, messages := i18ncatalog.Default().Namespace(locale, Namespace)
	c, ok := cached(resolved)
	if !ok {
		c = NewCatalog(resolved, messages)
	}

	mu.Lock()
	defer mu.Unlock()
	if existing, ok := cache[resolved]; ok {
		c = existing
	} else {
		cache[resolved] = c
	}
	cache[locale] = c
	return c
}

// NewCatalog parses messages into a catalog. Messages that fail to parse
// are kept and rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[Code]*template.Template, len(messages)),
		raw:       make(map[Code]string, len(messages)),
	}
	for code, body := range messages {
		c.raw[code] = body
		if t, err := template.New(code).Parse(body); err == nil {
			c.templates[code] = t
		}
	}
	return c
}

// Locale returns the locale that supplied the messages.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code with metadata. An unknown code
// renders as itself, and a template failure renders the raw message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	body, ok := c.raw[code]
	if !ok {
		return code
	}
	t, ok := c.templates[code]
	if !ok {
		return body
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return body
	}
	return buf.String()
}

func cached(locale string) (*Catalog, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := cache[locale]
	return c, ok
}
