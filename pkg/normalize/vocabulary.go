package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

// Entry is one tier in a vocabulary. Aliases are extra spellings that
// resolve to the same canonical label.
type Entry struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Score     float64  `yaml:"score"     json:"score"`
	Aliases   []string `yaml:"aliases"   json:"aliases,omitempty"`
}

type pattern struct {
	text      string
	compact   string
	canonical string
}

// Vocabulary is a closed table of canonical tier labels and their scores.
// It is immutable once built and safe for concurrent use.
type Vocabulary struct {
	defaultScore float64
	entries      []Entry
	scores       map[string]float64
	patterns     []pattern
}

// NewVocabulary builds a vocabulary. defaultScore is returned for
// domain.Unknown and any label not in the table.
func NewVocabulary(defaultScore float64, entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		defaultScore: defaultScore,
		scores:       make(map[string]float64, len(entries)),
	}

	owner := make(map[string]string)
	var errs []error

	for _, e := range entries {
		canonical := Lower(e.Canonical)
		if canonical == "" {
			errs = append(errs, errors.New("vocabulary entry has empty canonical label"))
			continue
		}
		if _, dup := v.scores[canonical]; dup {
			errs = append(errs, fmt.Errorf("duplicate canonical label %q", canonical))
			continue
		}
		v.scores[canonical] = e.Score

		aliases := make([]string, 0, len(e.Aliases))
		for _, text := range append([]string{canonical}, e.Aliases...) {
			text = Lower(text)
			if text == "" {
				continue
			}
			if prev, taken := owner[text]; taken && prev != canonical {
				errs = append(errs, fmt.Errorf("pattern %q maps to both %q and %q", text, prev, canonical))
				continue
			}
			owner[text] = canonical
			v.patterns = append(v.patterns, pattern{
				text:      text,
				compact:   compact(text),
				canonical: canonical,
			})
			if text != canonical {
				aliases = append(aliases, text)
			}
		}
		v.entries = append(v.entries, Entry{Canonical: canonical, Score: e.Score, Aliases: aliases})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	// Longest pattern first so "ultra 9 275hx" wins over "ultra 9" and "i9".
	sort.SliceStable(v.patterns, func(i, j int) bool {
		a, b := v.patterns[i], v.patterns[j]
		if len(a.text) != len(b.text) {
			return len(a.text) > len(b.text)
		}
		return a.text < b.text
	})

	return v, nil
}

// Match returns the canonical label for free text, or domain.Unknown.
// A pattern matches when it occurs in the lower-cased text as written, or
// when the text read from the start of a word with spaces and hyphens
// removed begins with the packed pattern. "GeForce RTX 4060" matches
// "rtx4060"; "Ryzen AI 9" does not match "i9".
func (v *Vocabulary) Match(text string) string {
	lower := Lower(text)
	if lower == "" {
		return domain.Unknown
	}
	words := packedWords(lower)

	for _, p := range v.patterns {
		if strings.Contains(lower, p.text) {
			return p.canonical
		}
		for _, w := range words {
			if strings.HasPrefix(w, p.compact) {
				return p.canonical
			}
		}
	}
	return domain.Unknown
}

// packedWords returns the compacted remainder of s from every word start.
func packedWords(s string) []string {
	var out []string
	prev := ' '
	for i, r := range s {
		if isWordRune(r) && !isWordRune(prev) {
			out = append(out, compact(s[i:]))
		}
		prev = r
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Score returns the score for a canonical label.
func (v *Vocabulary) Score(canonical string) float64 {
	if s, ok := v.scores[canonical]; ok {
		return s
	}
	return v.defaultScore
}

// DefaultScore is the score of domain.Unknown.
func (v *Vocabulary) DefaultScore() float64 {
	return v.defaultScore
}

// Entries returns a copy of the table in declaration order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len returns the number of canonical labels.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Brand is one manufacturer with its reliability score. Aliases are product
// line names that identify the brand ("macbook", "thinkpad").
type Brand struct {
	Name    string   `yaml:"name"    json:"name"`
	Score   float64  `yaml:"score"   json:"score"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// BrandTable resolves brands from listing names.
type BrandTable struct {
	defaultScore float64
	brands       []Brand
	scores       map[string]float64
}

// NewBrandTable builds a brand table. Brands are tested in the given order.
func NewBrandTable(defaultScore float64, brands []Brand) (*BrandTable, error) {
	t := &BrandTable{
		defaultScore: defaultScore,
		scores:       make(map[string]float64, len(brands)),
	}
	for _, b := range brands {
		name := Lower(b.Name)
		if name == "" {
			return nil, errors.New("brand entry has empty name")
		}
		if _, dup := t.scores[name]; dup {
			return nil, fmt.Errorf("duplicate brand %q", name)
		}
		aliases := make([]string, 0, len(b.Aliases))
		for _, a := range b.Aliases {
			if a = Lower(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		t.scores[name] = b.Score
		t.brands = append(t.brands, Brand{Name: name, Score: b.Score, Aliases: aliases})
	}
	return t, nil
}

// Extract returns the first brand whose name or alias appears as a word in
// the listing name, or domain.BrandOther.
func (t *BrandTable) Extract(name string) string {
	words := strings.FieldsFunc(Lower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return domain.BrandOther
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	for _, b := range t.brands {
		if _, ok := set[b.Name]; ok {
			return b.Name
		}
		for _, a := range b.Aliases {
			if _, ok := set[a]; ok {
				return b.Name
			}
		}
	}
	return domain.BrandOther
}

// Score returns the reliability score for a brand.
func (t *BrandTable) Score(brand string) float64 {
	if s, ok := t.scores[brand]; ok {
		return s
	}
	return t.defaultScore
}

// Brands returns a copy of the table in match order.
func (t *BrandTable) Brands() []Brand {
	out := make([]Brand, len(t.brands))
	copy(out, t.brands)
	return out
}
