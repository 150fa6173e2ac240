// Package i18n looks up human-readable strings. Lookups fall back from the
// requested language to English and finally to the raw key.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Fallback is the language every lookup falls back to.
const Fallback = "en"

//go:embed data/*.yaml
var tables embed.FS

// Translator holds flattened translation tables keyed by language code.
type Translator struct {
	tables map[string]map[string]string
}

var loadDefault = sync.OnceValues(func() (*Translator, error) {
	t := &Translator{tables: make(map[string]map[string]string)}
	entries, err := tables.ReadDir("data")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		data, err := tables.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, err
		}
		if err := t.Add(strings.TrimSuffix(e.Name(), ".yaml"), data); err != nil {
			return nil, err
		}
	}
	return t, nil
})

// Default returns the translator built from the embedded tables.
func Default() *Translator {
	t, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded translations are invalid: %v", err))
	}
	return t
}

// New returns an empty translator.
func New() *Translator {
	return &Translator{tables: make(map[string]map[string]string)}
}

// Add parses a nested YAML table and merges it into lang.
func (t *Translator) Add(lang string, data []byte) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("parse translations %q: %w", lang, err)
	}
	table := t.tables[lang]
	if table == nil {
		table = make(map[string]string)
		t.tables[lang] = table
	}
	flatten("", tree, table)
	return nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flatten(key, child, out)
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

// Languages lists the loaded language codes.
func (t *Translator) Languages() []string {
	langs := make([]string, 0, len(t.tables))
	for l := range t.tables {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Lookup finds key in lang, then in English.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	if s, ok := t.tables[lang][key]; ok {
		return s, true
	}
	s, ok := t.tables[Fallback][key]
	return s, ok
}

// T translates key and substitutes {name} placeholders from params.
func (t *Translator) T(lang, key string, params map[string]any) string {
	s, ok := t.Lookup(lang, key)
	if !ok {
		return key
	}
	for name, v := range params {
		s = strings.ReplaceAll(s, "{"+name+"}", fmt.Sprint(v))
	}
	return s
}

// Entity translates a catalog entity field such as jobs.barista.title.
// An empty field addresses the entity itself. Unknown entities render as
// their upper-cased id.
func (t *Translator) Entity(lang, category, id, field string) string {
	if s, ok := t.Lookup(lang, entityKey(category, id, field)); ok {
		return s
	}
	return strings.ToUpper(id)
}

func entityKey(category, id, field string) string {
	key := category + "." + id
	if field != "" {
		key += "." + field
	}
	return key
}
