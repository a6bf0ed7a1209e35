// Package i18n renders localized error messages from the "errors"
// namespace of the locale catalogs.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/vttbridge/internal/platform/i18n/catalog"
)

// Catalog holds the parsed error templates of one locale.
type Catalog struct {
	locale    string
	templates map[string]*template.Template
	raw       map[string]string
}

// catalogs caches one *Catalog per resolved locale.
var catalogs sync.Map

// For returns the catalog closest to locale, falling back to the base locale.
func For(locale string) *Catalog {
	bundle := i18ncatalog.Default()
	resolved, messages := bundle.Namespace(bundle.Resolve(locale), "errors")
	if c, ok := catalogs.Load(resolved); ok {
		return c.(*Catalog)
	}
	c, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return c.(*Catalog)
}

// NewCatalog parses messages as text/template sources keyed by error code.
// Sources that fail to parse are kept and rendered verbatim.
func NewCatalog(locale string, messages map[string]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[string]*template.Template, len(messages)),
		raw:       make(map[string]string, len(messages)),
	}
	for code, source := range messages {
		c.raw[code] = source
		if !strings.Contains(source, "{{") {
			continue
		}
		if t, err := template.New(code).Option("missingkey=zero").Parse(source); err == nil {
			c.templates[code] = t
		}
	}
	return c
}

// Locale returns the locale the catalog was built for.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders code with metadata. ok is false when the catalog has no
// message for code.
func (c *Catalog) Format(code string, metadata map[string]string) (string, bool) {
	source, ok := c.raw[code]
	if !ok {
		return "", false
	}
	t, ok := c.templates[code]
	if !ok {
		return source, true
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var sb strings.Builder
	if err := t.Execute(&sb, metadata); err != nil {
		return source, true
	}
	return sb.String(), true
}

// Lookup renders code in locale.
func Lookup(locale, code string, metadata map[string]string) (string, bool) {
	return For(locale).Format(code, metadata)
}
