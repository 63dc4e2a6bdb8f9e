package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"

	"github.com/cory-johannsen/underbrush/internal/options"
)

// EnvLanguage is the variable the chosen language is exported in.
const EnvLanguage = "LANGUAGE"

// ErrNoLanguages is returned when there is nothing to choose from.
var ErrNoLanguages = errors.New("no languages to choose from")

// Settings is the option storage the bootstrap reads and writes.
type Settings interface {
	String(name string) string
	Set(name, value string) error
	Items(name string) []options.Item
	Save(ctx context.Context) error
}

// Prompter shows a menu that cannot be cancelled and returns the chosen index.
type Prompter interface {
	Choose(title string, entries []string) int
}

// Env reads and writes process environment variables.
type Env interface {
	Setenv(key, value string) error
	Getenv(key string) string
}

type osEnv struct{}

func (osEnv) Setenv(k, v string) error { return os.Setenv(k, v) }
func (osEnv) Getenv(k string) string   { return os.Getenv(k) }

// Config locates localization data.
type Config struct {
	// BasePath is the installation prefix; catalogs live under
	// <BasePath>/share/locale when it is set.
	BasePath string
	// NamesFile is the default random-name list.
	NamesFile string
}

// LocaleDir is the directory message catalogs are bound from.
func (c Config) LocaleDir() string {
	if c.BasePath != "" {
		return filepath.Join(c.BasePath, "share", "locale")
	}
	return filepath.Join("lang", "mo")
}

// Bootstrap applies the language option to the running process.
type Bootstrap struct {
	cfg        Config
	settings   Settings
	names      *Names
	env        Env
	systemLang func() string
	logger     *zap.Logger

	mu        sync.RWMutex
	tr        *Translator
	globalTag language.Tag
	listeners []func(*Translator)
}

// New creates a Bootstrap that starts out untranslated.
//
// Precondition: settings, names and logger are non-nil.
func New(cfg Config, settings Settings, names *Names, logger *zap.Logger) *Bootstrap {
	b := &Bootstrap{
		cfg:       cfg,
		settings:  settings,
		names:     names,
		env:       osEnv{},
		logger:    logger,
		tr:        NewTranslator(language.English, catalog.NewBuilder()),
		globalTag: language.Und,
	}
	b.systemLang = func() string { return platformLanguage(os.Getenv, b.IsValidLanguage) }
	return b
}

// SetEnv replaces the process environment, for tests.
func (b *Bootstrap) SetEnv(env Env) { b.env = env }

// SetSystemLanguage replaces system language detection.
func (b *Bootstrap) SetSystemLanguage(fn func() string) { b.systemLang = fn }

// OnChange registers fn to receive the new translator whenever the language
// is applied. Cached translations are dropped by the listeners.
func (b *Bootstrap) OnChange(fn func(*Translator)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Translator returns the active translator.
func (b *Bootstrap) Translator() *Translator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tr
}

// GlobalTag is the process-wide language tag set by UpdateGlobalLocale.
func (b *Bootstrap) GlobalTag() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.globalTag
}

// Comparator orders strings by the process-wide language.
func (b *Bootstrap) Comparator() *Comparator {
	return NewComparator(b.GlobalTag())
}

// IsValidLanguage reports whether lang is offered by the language option.
func (b *Bootstrap) IsValidLanguage(lang string) bool {
	items := b.settings.Items(options.UseLang)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return IsValidLanguage(lang, ids)
}

// SelectLanguage asks the player to pick a language and saves the choice.
//
// Precondition: p is non-nil.
// Postcondition: the language option holds the chosen id and options are saved.
func (b *Bootstrap) SelectLanguage(ctx context.Context, p Prompter) error {
	var ids, entries []string
	for _, it := range b.settings.Items(options.UseLang) {
		if it.ID == "" || it.Name == "" {
			continue
		}
		ids = append(ids, it.ID)
		entries = append(entries, it.Name)
	}
	if len(ids) == 0 {
		return ErrNoLanguages
	}
	i := p.Choose(b.Translator().Sprintf("Select your language"), entries)
	if i < 0 || i >= len(ids) {
		return fmt.Errorf("language choice %d out of range", i)
	}
	if err := b.settings.Set(options.UseLang, ids[i]); err != nil {
		return err
	}
	return b.settings.Save(ctx)
}

// SetLanguage applies the language option, or the system language when the
// option is empty: exports it, binds the message catalogs, hands the new
// translator to listeners and reloads the names.
//
// Postcondition: Translator() reflects the chosen language.
func (b *Bootstrap) SetLanguage() error {
	lang := b.settings.String(options.UseLang)
	if lang == "" {
		lang = b.systemLang()
	}
	if lang != "" {
		if err := b.env.Setenv(EnvLanguage, lang); err != nil {
			b.logger.Warn("can't set LANGUAGE environment variable", zap.Error(err))
		} else if v := b.env.Getenv(EnvLanguage); v != "" {
			b.logger.Info("language is set", zap.String("LANGUAGE", v))
		} else {
			b.logger.Warn("can't get LANGUAGE environment variable")
		}
	}

	dir := b.cfg.LocaleDir()
	cat, _, err := LoadCatalog(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.logger.Warn("no message catalogs", zap.String("dir", dir))
		cat = catalog.NewBuilder()
	case err != nil:
		return fmt.Errorf("binding message catalogs: %w", err)
	}

	tag := language.English
	if lang != "" {
		if t, err := Tag(lang); err == nil {
			tag = t
		} else {
			b.logger.Warn("unparsable language", zap.String("lang", lang), zap.Error(err))
		}
	}
	tr := NewTranslator(tag, cat)

	b.mu.Lock()
	b.tr = tr
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn(tr)
	}
	b.logger.Debug("translations invalidated",
		zap.Stringer("tag", tag),
		zap.String("dir", dir),
	)

	return b.reloadNames(lang)
}

func (b *Bootstrap) reloadNames(lang string) error {
	b.names.Clear()
	if b.cfg.NamesFile == "" {
		return nil
	}
	path := LocalizedNamesPath(b.cfg.NamesFile, lang)
	if err := b.names.LoadFromFile(path); err != nil {
		return err
	}
	b.logger.Debug("names reloaded", zap.String("path", path), zap.Int("names", b.names.Len()))
	return nil
}

// UpdateGlobalLocale sets the process-wide tag from the language option. An
// empty option leaves the tag alone; an unusable locale resets it to the
// default.
func (b *Bootstrap) UpdateGlobalLocale() {
	if lang := b.settings.String(options.UseLang); lang != "" {
		tag, err := Tag(Lookup(lang, b.logger).Locale)
		if err != nil {
			tag = language.Und
		}
		b.mu.Lock()
		b.globalTag = tag
		b.mu.Unlock()
	}
	b.logger.Info("locale set", zap.Stringer("tag", b.GlobalTag()))
}

// envLanguage reads the POSIX locale variables in priority order.
// Unset, C and POSIX locales yield "".
func envLanguage(getenv func(string) string, valid func(string) bool) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		return NormalizeSystemLang(v, valid)
	}
	return ""
}
