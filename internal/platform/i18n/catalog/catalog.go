// Package catalog loads the embedded locale catalogs and registers them with
// golang.org/x/text/message so printers can render localized reports.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

// catalogFile is one locales/<locale>/<namespace>.yaml document.
type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// namespaces maps namespace -> key -> message for one locale.
type namespaces map[string]map[string]string

// Bundle holds every loaded locale and a matcher for choosing between them.
type Bundle struct {
	locales map[string]namespaces
	tags    []language.Tag
	matcher language.Matcher
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadDefault()

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(files)

	b := &Bundle{locales: map[string]namespaces{}}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		file, err := parseCatalogFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}
		if err := b.add(name, file); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// BaseLocale leads the tag list so the matcher falls back to it.
	b.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range b.sortedLocales() {
		if locale == BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// add merges one file into the bundle. The file's locale and namespace must
// agree with its path, and summary keys carry their namespace as prefix.
func (b *Bundle) add(name string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	if dir := path.Base(path.Dir(name)); locale != dir {
		return fmt.Errorf("locale %q must match path locale %q", locale, dir)
	}
	if base := strings.TrimSuffix(path.Base(name), path.Ext(name)); namespace != base {
		return fmt.Errorf("namespace %q must match filename namespace %q", namespace, base)
	}

	byNamespace, ok := b.locales[locale]
	if !ok {
		byNamespace = namespaces{}
		b.locales[locale] = byNamespace
	}
	if _, exists := byNamespace[namespace]; exists {
		return fmt.Errorf("namespace %q already defined for locale %q", namespace, locale)
	}

	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		switch {
		case key == "":
			return fmt.Errorf("message key cannot be blank")
		case namespace != "errors" && !strings.HasPrefix(key, namespace+"."):
			return fmt.Errorf("key %q must start with %q", key, namespace+".")
		}
		for other, otherMessages := range byNamespace {
			if _, dup := otherMessages[key]; dup {
				return fmt.Errorf("key %q already defined in namespace %q", key, other)
			}
		}
		messages[key] = value
	}
	byNamespace[namespace] = messages
	return nil
}

// Register hands every message to x/text/message under its locale tag.
func (b *Bundle) Register() error {
	for _, locale := range b.sortedLocales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for _, messages := range b.locales[locale] {
			for key, value := range messages {
				if err := message.SetString(tag, key, value); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// Resolve picks the closest loaded locale. Unknown or malformed requests
// resolve to BaseLocale.
func (b *Bundle) Resolve(locale string) string {
	locale = strings.TrimSpace(locale)
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	if b.HasLocale(locale) {
		return locale
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns a message printer for the resolved locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	return message.NewPrinter(language.MustParse(b.Resolve(locale)))
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Namespace returns a copy of one namespace's messages. When the locale
// lacks the namespace, BaseLocale's copy is returned instead; the first
// result names the locale that was used.
func (b *Bundle) Namespace(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	namespace = strings.TrimSpace(namespace)
	if b == nil {
		return BaseLocale, map[string]string{}
	}
	if messages := b.locales[locale][namespace]; len(messages) > 0 {
		return locale, cloneMessages(messages)
	}
	return BaseLocale, cloneMessages(b.locales[BaseLocale][namespace])
}

func (b *Bundle) sortedLocales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func cloneMessages(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mustLoadDefault() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}

// parseCatalogFile decodes one catalog file:
//
//	locale: "de-DE"
//	namespace: "summary"
//	messages:
//	  "summary.key": "value"
func parseCatalogFile(data []byte) (catalogFile, error) {
	var out catalogFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return catalogFile{}, err
	}
	switch {
	case out.Locale == "":
		return catalogFile{}, fmt.Errorf("missing locale")
	case out.Namespace == "":
		return catalogFile{}, fmt.Errorf("missing namespace")
	case len(out.Messages) == 0:
		return catalogFile{}, fmt.Errorf("missing messages")
	}
	return out, nil
}
