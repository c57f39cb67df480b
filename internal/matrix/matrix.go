// Package matrix decodes decision-matrix documents into engine input.
//
// A document lists criteria and alternatives. Alternative scores are keyed
// by criterion id; a null or missing score is absent. JSON documents are
// accepted too since they parse as YAML.
//
//	criteria:
//	  - id: price
//	    name: Price
//	    weight: 0.6
//	    type: cost
//	alternatives:
//	  - name: Laptop A
//	    scores: {price: 100}
package matrix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

// Document is the on-disk and on-the-wire shape of a decision matrix.
type Document struct {
	Criteria     []CriterionDoc   `yaml:"criteria" json:"criteria"`
	Alternatives []AlternativeDoc `yaml:"alternatives" json:"alternatives"`
}

type CriterionDoc struct {
	ID     string  `yaml:"id,omitempty" json:"id,omitempty"`
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
	Type   string  `yaml:"type" json:"type"`
}

type AlternativeDoc struct {
	ID     string              `yaml:"id,omitempty" json:"id,omitempty"`
	Name   string              `yaml:"name" json:"name"`
	Scores map[string]*float64 `yaml:"scores" json:"scores"`
}

// Decode reads a document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("parse matrix: %w", err)
	}
	return &doc, nil
}

// Parse decodes a document from bytes.
func Parse(data []byte) (*Document, error) {
	return Decode(bytes.NewReader(data))
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	return Parse(data)
}

// Build converts the document into engine input. Missing ids are derived
// from names. Names must be non-empty, ids unique, criterion types known,
// and every score key must name a criterion. Matrix completeness is left
// to the engine.
func (d *Document) Build() ([]saw.Criterion, []saw.Alternative, error) {
	criteria := make([]saw.Criterion, 0, len(d.Criteria))
	known := make(map[string]bool, len(d.Criteria))
	for i, c := range d.Criteria {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("criterion %d: name required", i+1)
		}
		typ := saw.CriterionType(strings.ToLower(strings.TrimSpace(c.Type)))
		if !typ.Valid() {
			return nil, nil, fmt.Errorf("criterion %q: type must be benefit or cost, got %q", name, c.Type)
		}
		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) {
			return nil, nil, fmt.Errorf("criterion %q: weight must be finite", name)
		}
		id := c.ID
		if id == "" {
			id = Slug(name)
		}
		if known[id] {
			return nil, nil, fmt.Errorf("criterion %q: duplicate id %q", name, id)
		}
		known[id] = true
		criteria = append(criteria, saw.Criterion{ID: id, Name: name, Weight: c.Weight, Type: typ})
	}

	alternatives := make([]saw.Alternative, 0, len(d.Alternatives))
	seen := make(map[string]bool, len(d.Alternatives))
	for i, a := range d.Alternatives {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("alternative %d: name required", i+1)
		}
		id := a.ID
		if id == "" {
			id = Slug(name)
		}
		if seen[id] {
			return nil, nil, fmt.Errorf("alternative %q: duplicate id %q", name, id)
		}
		seen[id] = true

		scores := make(map[string]saw.Value, len(criteria))
		for _, c := range criteria {
			scores[c.ID] = saw.Absent()
		}
		for key, v := range a.Scores {
			if !known[key] {
				return nil, nil, fmt.Errorf("alternative %q: score for unknown criterion %q", name, key)
			}
			if v != nil {
				scores[key] = saw.Some(*v)
			}
		}
		alternatives = append(alternatives, saw.Alternative{ID: id, Name: name, Scores: scores})
	}
	return criteria, alternatives, nil
}

// Slug lowercases s and joins its letter/digit runs with '-'.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return s
	}
	return b.String()
}

// Export is the inverse of Build: it renders engine input as a document
// with explicit ids. Absent scores become null.
func Export(criteria []saw.Criterion, alternatives []saw.Alternative) *Document {
	d := &Document{
		Criteria:     make([]CriterionDoc, 0, len(criteria)),
		Alternatives: make([]AlternativeDoc, 0, len(alternatives)),
	}
	for _, c := range criteria {
		d.Criteria = append(d.Criteria, CriterionDoc{ID: c.ID, Name: c.Name, Weight: c.Weight, Type: string(c.Type)})
	}
	for _, a := range alternatives {
		scores := make(map[string]*float64, len(criteria))
		for _, c := range criteria {
			if v, ok := a.Scores[c.ID].Get(); ok {
				scores[c.ID] = &v
			} else {
				scores[c.ID] = nil
			}
		}
		d.Alternatives = append(d.Alternatives, AlternativeDoc{ID: a.ID, Name: a.Name, Scores: scores})
	}
	return d
}
