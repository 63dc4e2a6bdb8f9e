package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/underbrush/internal/game/dice"
)

// Names is the random-name list. Which file it comes from depends on the
// language, so it is reloaded whenever the language changes.
type Names struct {
	mu     sync.RWMutex
	given  []string
	family []string
}

type namesFile struct {
	Given  []string `yaml:"given"`
	Family []string `yaml:"family"`
}

// NewNames creates an empty name list.
func NewNames() *Names { return &Names{} }

// Clear drops every loaded name.
func (n *Names) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.given, n.family = nil, nil
}

// LoadFromFile adds the names in path.
func (n *Names) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading names %q: %w", path, err)
	}
	var f namesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing names %q: %w", path, err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.given = append(n.given, f.Given...)
	n.family = append(n.family, f.Family...)
	return nil
}

// Len is the number of names loaded.
func (n *Names) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.given) + len(n.family)
}

// Generate draws a "Given Family" name; either part is omitted when its list
// is empty.
func (n *Names) Generate(r *dice.Roller) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var parts []string
	for _, list := range [][]string{n.given, n.family} {
		if len(list) > 0 {
			parts = append(parts, list[r.Range(0, len(list)-1)])
		}
	}
	return strings.Join(parts, " ")
}

// LocalizedNamesPath returns the names file for lang: "names.de.yaml" next to
// "names.yaml", then the base language ("names.pt.yaml" for pt_BR), then
// path itself.
func LocalizedNamesPath(path, lang string) string {
	if lang == "" {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	candidates := []string{lang}
	if base, _, ok := strings.Cut(lang, "_"); ok {
		candidates = append(candidates, base)
	}
	for _, c := range candidates {
		p := stem + "." + c + ext
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return path
}
