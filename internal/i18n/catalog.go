package i18n

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// catalogFile is one locale's translations keyed by the English message.
type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// LoadCatalog reads every <locale>.yaml file in dir into a catalog. The
// locale named inside a file must match its file name.
//
// Postcondition: returns the catalog and the tags it covers, or an error
// wrapping fs.ErrNotExist when dir is missing, or one error listing every
// malformed file.
func LoadCatalog(dir string) (*catalog.Builder, []language.Tag, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil, fmt.Errorf("catalog dir: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("listing catalogs in %q: %w", dir, err)
	}
	sort.Strings(paths)

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	var tags []language.Tag
	var errs []error
	for _, path := range paths {
		tag, msgs, err := readCatalogFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		keys := make([]string, 0, len(msgs))
		for k := range msgs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := b.SetString(tag, k, msgs[k]); err != nil {
				errs = append(errs, fmt.Errorf("catalog %q: key %q: %w", path, k, err))
			}
		}
		tags = append(tags, tag)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}
	return b, tags, nil
}

func readCatalogFile(path string) (language.Tag, map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return language.Und, nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return language.Und, nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if f.Locale != stem {
		return language.Und, nil, fmt.Errorf("catalog %q: locale %q must match file name %q", path, f.Locale, stem)
	}
	tag, err := Tag(f.Locale)
	if err != nil {
		return language.Und, nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	for k := range f.Messages {
		if strings.TrimSpace(k) == "" {
			return language.Und, nil, fmt.Errorf("catalog %q: message key cannot be blank", path)
		}
	}
	return tag, f.Messages, nil
}

// Translator formats game messages in one language. It satisfies the
// message log's Printer.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// NewTranslator creates a Translator for tag backed by cat. Messages missing
// from cat are formatted untranslated.
func NewTranslator(tag language.Tag, cat catalog.Catalog) *Translator {
	return &Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag is the translator's language.
func (t *Translator) Tag() language.Tag { return t.tag }

// Sprintf translates format and formats args into it.
func (t *Translator) Sprintf(format string, args ...any) string {
	return t.printer.Sprintf(format, args...)
}
