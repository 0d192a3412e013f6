// Package catalog loads the embedded YAML message catalogs and registers
// them with golang.org/x/text/message.
//
// Catalog files live at locales/<locale>/<namespace>.yaml and must declare
// the same locale and namespace as their path.
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

// BaseLocale is the locale every other catalog is checked against.
const BaseLocale = "pt-BR"

type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds messages by locale, then namespace, then key.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS parses every locales/*/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s has no catalogs", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, f file) error {
	locale := path.Base(path.Dir(p))
	namespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if strings.TrimSpace(f.Locale) != locale {
		return fmt.Errorf("locale %q does not match directory %q", f.Locale, locale)
	}
	if strings.TrimSpace(f.Namespace) != namespace {
		return fmt.Errorf("namespace %q does not match file name %q", f.Namespace, namespace)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("no messages")
	}

	namespaces, ok := b.locales[locale]
	if !ok {
		namespaces = map[string]map[string]string{}
		b.locales[locale] = namespaces
	}
	messages := make(map[string]string, len(f.Messages))
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("blank message key")
		}
		for other, existing := range namespaces {
			if _, dup := existing[key]; dup {
				return fmt.Errorf("key %q already defined in namespace %q", key, other)
			}
		}
		messages[key] = value
	}
	namespaces[namespace] = messages
	return nil
}

// Register installs every message with x/text so message.Printer can
// translate keys. Each locale is also registered under its base language.
func (b *Bundle) Register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for _, messages := range b.locales[locale] {
			for key, value := range messages {
				for _, t := range tags {
					if err := message.SetString(t, key, value); err != nil {
						return fmt.Errorf("register %s/%s: %w", locale, key, err)
					}
				}
			}
		}
	}
	return nil
}

// Locales lists the loaded locales in order.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Namespace returns a copy of one namespace's messages. A locale without
// that namespace falls back to BaseLocale; the returned locale is the one
// that answered.
func (b *Bundle) Namespace(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages, ok := b.locales[locale][namespace]; ok {
		return locale, copyMessages(messages)
	}
	return BaseLocale, copyMessages(b.locales[BaseLocale][namespace])
}

// MissingKeys lists keys defined for BaseLocale but absent from locale.
func (b *Bundle) MissingKeys(locale string) []string {
	var missing []string
	for namespace, base := range b.locales[BaseLocale] {
		target := b.locales[locale][namespace]
		for key := range base {
			if _, ok := target[key]; !ok {
				missing = append(missing, namespace+"/"+key)
			}
		}
	}
	sort.Strings(missing)
	return missing
}

func copyMessages(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
