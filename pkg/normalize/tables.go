package normalize

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/laptop-advisor/pkg/types"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables bundles every lookup table the catalog processor needs.
type Tables struct {
	Version    string
	CPU        *Vocabulary
	GPU        *Vocabulary
	Brands     *BrandTable
	integrated map[string]struct{}
}

type tablesFile struct {
	Version    string         `yaml:"version"`
	CPU        vocabularyFile `yaml:"cpu"`
	GPU        vocabularyFile `yaml:"gpu"`
	Brands     brandsFile     `yaml:"brands"`
	Integrated []string       `yaml:"integrated"`
}

type vocabularyFile struct {
	Default *float64 `yaml:"default"`
	Entries []Entry `yaml:"entries"`
}

type brandsFile struct {
	Default *float64 `yaml:"default"`
	Entries []Brand `yaml:"entries"`
}

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTablesYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in lookup tables are invalid: %v", err))
	}
	return t
}

// LoadTables reads lookup tables from a YAML file. Sections missing from the
// file keep their built-in values.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path) //nolint:gosec // tables path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes YAML lookup tables, filling missing sections and
// missing default scores from the built-in tables.
func ParseTables(data []byte) (*Tables, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tables YAML: %w", err)
	}

	var base tablesFile
	if err := yaml.Unmarshal(defaultTablesYAML, &base); err != nil {
		return nil, fmt.Errorf("parsing built-in tables: %w", err)
	}
	mergeTables(&f, &base)

	return buildTables(&f)
}

func mergeTables(f, base *tablesFile) {
	if f.Version == "" {
		f.Version = base.Version
	}
	if len(f.CPU.Entries) == 0 {
		f.CPU.Entries = base.CPU.Entries
	}
	if len(f.GPU.Entries) == 0 {
		f.GPU.Entries = base.GPU.Entries
	}
	if len(f.Brands.Entries) == 0 {
		f.Brands.Entries = base.Brands.Entries
	}
	if f.CPU.Default == nil {
		f.CPU.Default = base.CPU.Default
	}
	if f.GPU.Default == nil {
		f.GPU.Default = base.GPU.Default
	}
	if f.Brands.Default == nil {
		f.Brands.Default = base.Brands.Default
	}
	if len(f.Integrated) == 0 {
		f.Integrated = base.Integrated
	}
}

func buildTables(f *tablesFile) (*Tables, error) {
	var errs []error

	cpu, err := NewVocabulary(deref(f.CPU.Default), f.CPU.Entries)
	if err != nil {
		errs = append(errs, fmt.Errorf("cpu table: %w", err))
	}
	gpu, err := NewVocabulary(deref(f.GPU.Default), f.GPU.Entries)
	if err != nil {
		errs = append(errs, fmt.Errorf("gpu table: %w", err))
	}
	brands, err := NewBrandTable(deref(f.Brands.Default), f.Brands.Entries)
	if err != nil {
		errs = append(errs, fmt.Errorf("brand table: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	integrated := map[string]struct{}{domain.Unknown: {}}
	for _, g := range f.Integrated {
		integrated[Lower(g)] = struct{}{}
	}

	return &Tables{
		Version:    f.Version,
		CPU:        cpu,
		GPU:        gpu,
		Brands:     brands,
		integrated: integrated,
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// IsIntegrated reports whether a canonical GPU label denotes integrated
// graphics. domain.Unknown always counts as integrated.
func (t *Tables) IsIntegrated(gpu string) bool {
	_, ok := t.integrated[gpu]
	return ok
}
