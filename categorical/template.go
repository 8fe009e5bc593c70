// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"

	"github.com/valyala/fasttemplate"

	"github.com/katalvlaran/lvfactor/factor"
)

// Template is an immutable blueprint for factors that share one table and
// one set of cardinalities but differ in variable names, such as the
// per-time-step factors of a dynamic model.
//
// Variable templates use {key} placeholders, e.g. "rain_{t}"; MakeFactor
// fills them from a format map. Templates without variable templates are
// instantiated with MakeFactorWithNames.
type Template struct {
	varTemplates []string
	cards        []int
	table        map[string]float64
	opts         []Option
}

// compile-time check
var _ factor.Template = (*Template)(nil)

// NewTemplate builds a template from explicit log-probabilities. varTemplates
// may be nil; otherwise it must have one entry per cardinality. opts are
// applied to every factor the template makes.
func NewTemplate(logProbs []Entry, cardinalities []int, varTemplates []string, opts ...Option) (*Template, error) {
	if varTemplates != nil && len(varTemplates) != len(cardinalities) {
		return nil, categoricalErrorf("new template", fmt.Errorf("%d templates, %d cardinalities: %w",
			len(varTemplates), len(cardinalities), ErrShape))
	}
	// validate the table against a throwaway scope of positional names
	names := make([]string, len(cardinalities))
	for i := range names {
		names[i] = fmt.Sprintf("_%d", i)
	}
	proto, err := New(names, cardinalities, logProbs, opts...)
	if err != nil {
		return nil, categoricalErrorf("new template", err)
	}
	return &Template{
		varTemplates: slices.Clone(varTemplates),
		cards:        slices.Clone(cardinalities),
		table:        proto.table,
		opts:         slices.Clone(opts),
	}, nil
}

// NewTemplateFromProbs builds a template from probabilities.
func NewTemplateFromProbs(probs []Entry, cardinalities []int, varTemplates []string, opts ...Option) (*Template, error) {
	logProbs := make([]Entry, len(probs))
	for i, e := range probs {
		logProbs[i] = Entry{Assignment: e.Assignment, Value: math.Log(e.Value)}
	}
	return NewTemplate(logProbs, cardinalities, varTemplates, opts...)
}

// VarTemplates returns a copy of the variable name templates (nil if none).
func (t *Template) VarTemplates() []string { return slices.Clone(t.varTemplates) }

// MakeFactor fills every {key} placeholder from format and returns the factor.
// Unknown keys fail with ErrTemplateFormat; a template without variable
// templates fails with ErrTemplateNames.
func (t *Template) MakeFactor(format map[string]string) (factor.Factor, error) {
	f, err := t.Instantiate(format)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// MakeFactorWithNames returns the factor over the given concrete names.
func (t *Template) MakeFactorWithNames(names []string) (factor.Factor, error) {
	f, err := t.build("make factor", names)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Instantiate is MakeFactor with a concrete result type.
func (t *Template) Instantiate(format map[string]string) (*SparseCategorical, error) {
	if len(t.varTemplates) == 0 {
		return nil, categoricalErrorf("make factor", fmt.Errorf("no variable templates: %w", ErrTemplateNames))
	}
	names := make([]string, len(t.varTemplates))
	for i, vt := range t.varTemplates {
		name, err := fasttemplate.ExecuteFuncStringWithErr(vt, "{", "}", func(w io.Writer, tag string) (int, error) {
			v, ok := format[tag]
			if !ok {
				return 0, fmt.Errorf("placeholder %q in %q: %w", tag, vt, ErrTemplateFormat)
			}
			return io.WriteString(w, v)
		})
		if err != nil {
			return nil, categoricalErrorf("make factor", err)
		}
		names[i] = name
	}
	return t.build("make factor", names)
}

func (t *Template) build(tag string, names []string) (*SparseCategorical, error) {
	if len(names) != len(t.cards) {
		return nil, categoricalErrorf(tag, fmt.Errorf("%d names for %d variables: %w", len(names), len(t.cards), ErrTemplateNames))
	}
	f, err := newValidated(names, t.cards, gatherOptions(t.opts...))
	if err != nil {
		return nil, categoricalErrorf(tag, err)
	}
	f.table = maps.Clone(t.table)
	return f, nil
}
