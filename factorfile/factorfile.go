// SPDX-License-Identifier: MIT

// Package factorfile reads and writes factors and templates as YAML.
//
// A document lists the scope, the cardinalities and the explicit table in
// either log or probability space:
//
//	variables: [rain, slip]
//	cardinalities: [2, 2]
//	default_log_prob: -.inf   # optional; -.inf when omitted
//	probs:
//	  - {assignment: [0, 0], value: 0.8}
//	  - {assignment: [1, 1], value: 0.6}
//
// A template document carries var_templates instead of variables. Several
// documents may share one stream, separated by "---".
package factorfile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfactor/categorical"
)

// ErrInvalidDocument indicates a document that cannot describe a factor.
var ErrInvalidDocument = errors.New("factorfile: invalid document")

// Row is one explicit table entry.
type Row struct {
	Assignment []int   `yaml:"assignment,flow"`
	Value      float64 `yaml:"value"`
}

// Document is the YAML form of a factor or a template.
type Document struct {
	// scope of a factor; empty for templates
	Variables []string `yaml:"variables,omitempty,flow"`
	// {key} name templates; empty for factors
	VarTemplates  []string `yaml:"var_templates,omitempty,flow"`
	Cardinalities []int    `yaml:"cardinalities,flow"`
	// nil means -Inf
	DefaultLogProb *float64 `yaml:"default_log_prob,omitempty"`
	// exactly one of LogProbs and Probs is read
	LogProbs []Row `yaml:"log_probs,omitempty"`
	Probs    []Row `yaml:"probs,omitempty"`
}

// IsTemplate reports whether d describes a template.
func (d *Document) IsTemplate() bool { return len(d.VarTemplates) > 0 }

// Decode reads a single document from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	d := &Document{}
	if err := dec.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty stream", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return d, nil
}

// DecodeAll reads every document of a "---"-separated stream.
func DecodeAll(r io.Reader) ([]*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var out []*Document
	for {
		d := &Document{}
		err := dec.Decode(d)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", ErrInvalidDocument, len(out), err)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty stream", ErrInvalidDocument)
	}
	return out, nil
}

// Load reads every document in the file at path.
func Load(path string) ([]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	docs, err := DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// Encode writes d as one YAML document.
func Encode(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// FromFactor returns the document of f with its table in log space.
func FromFactor(f *categorical.SparseCategorical) *Document {
	def := f.DefaultLogProb()
	d := &Document{
		Variables:      f.VarNames(),
		Cardinalities:  f.Cardinalities(),
		DefaultLogProb: &def,
	}
	for _, e := range f.Entries() {
		d.LogProbs = append(d.LogProbs, Row{Assignment: e.Assignment, Value: e.Value})
	}
	return d
}

// Factor builds the factor d describes. A default in the document overrides
// one given in opts.
func (d *Document) Factor(opts ...categorical.Option) (*categorical.SparseCategorical, error) {
	if d.IsTemplate() {
		return nil, fmt.Errorf("%w: template document used as a factor", ErrInvalidDocument)
	}
	rows, fromProbs, opts, err := d.table(opts)
	if err != nil {
		return nil, err
	}
	if fromProbs {
		return categorical.NewFromProbs(d.Variables, d.Cardinalities, rows, opts...)
	}
	return categorical.New(d.Variables, d.Cardinalities, rows, opts...)
}

// Template builds the template d describes.
func (d *Document) Template(opts ...categorical.Option) (*categorical.Template, error) {
	if len(d.Variables) > 0 {
		return nil, fmt.Errorf("%w: factor document used as a template", ErrInvalidDocument)
	}
	rows, fromProbs, opts, err := d.table(opts)
	if err != nil {
		return nil, err
	}
	var templates []string
	if d.IsTemplate() {
		templates = d.VarTemplates
	}
	if fromProbs {
		return categorical.NewTemplateFromProbs(rows, d.Cardinalities, templates, opts...)
	}
	return categorical.NewTemplate(rows, d.Cardinalities, templates, opts...)
}

// table picks the populated table and appends the document default to opts.
func (d *Document) table(opts []categorical.Option) ([]categorical.Entry, bool, []categorical.Option, error) {
	if len(d.LogProbs) > 0 && len(d.Probs) > 0 {
		return nil, false, nil, fmt.Errorf("%w: both log_probs and probs are set", ErrInvalidDocument)
	}
	if d.DefaultLogProb != nil {
		if math.IsNaN(*d.DefaultLogProb) {
			return nil, false, nil, fmt.Errorf("%w: default_log_prob is NaN", ErrInvalidDocument)
		}
		opts = append(opts[:len(opts):len(opts)], categorical.WithDefaultLogProb(*d.DefaultLogProb))
	}
	src, fromProbs := d.LogProbs, false
	if len(d.Probs) > 0 {
		src, fromProbs = d.Probs, true
	}
	rows := make([]categorical.Entry, len(src))
	for i, r := range src {
		rows[i] = categorical.Entry{Assignment: r.Assignment, Value: r.Value}
	}
	return rows, fromProbs, opts, nil
}
