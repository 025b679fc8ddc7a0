// Package catalog builds unit evaluation tables from declarative unit
// definitions.
//
// A compiled Numerobis program ships its tables ahead-of-time; embeddings
// that drive the runtime directly (the CLI, the REPL, tests) load a catalog
// instead. Each entry derives the three per-identifier evaluations the same
// way the compiler's preprocessor does: a multiplicative factor for scaled
// units, an affine offset pair for temperature-style units, and a log10
// anchor for decibel-style units. Affine and logarithmic units are marked
// logarithmic, so conversion takes the inverted/base ratio directly.
package catalog

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// Entry is one unit definition.
//
// Exactly one interpretation applies, checked in order:
//   - Log10Ref set: logarithmic, value = Per*log10(x/Log10Ref).
//   - Offset or Scale set: affine, value = Scale*x + Offset.
//   - Factor set: multiplicative, value = Factor*x.
//   - none set: a base unit, value = x.
type Entry struct {
	Name     string   `yaml:"name"`
	Factor   *float64 `yaml:"factor,omitempty"`
	Scale    *float64 `yaml:"scale,omitempty"`
	Offset   *float64 `yaml:"offset,omitempty"`
	Log10Ref *float64 `yaml:"log10ref,omitempty"`
	// Per is the logarithmic step per decade; defaults to 10 (decibels).
	Per *float64 `yaml:"per,omitempty"`
}

type file struct {
	Units []Entry `yaml:"units"`
}

// kind discriminates the compiled evaluation forms.
type kind int

const (
	kindBase kind = iota
	kindFactor
	kindAffine
	kindLog
)

type compiled struct {
	name   string
	kind   kind
	factor float64
	scale  float64
	offset float64
	ref    float64
	per    float64
}

// Catalog maps unit names to identifier ids and implements units.Tables.
type Catalog struct {
	entries []compiled
	byName  map[string]uint16
}

// Load parses a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return New(f.Units)
}

// LoadFile reads and parses a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Load(data)
}

// New compiles entries into a catalog. Ids are assigned in entry order.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]uint16, len(entries))}

	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog: unit with empty name")
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate unit %q", e.Name)
		}

		ce := compiled{name: e.Name, factor: 1, scale: 1, per: 10}
		switch {
		case e.Log10Ref != nil:
			ce.kind = kindLog
			ce.ref = *e.Log10Ref
			if ce.ref <= 0 {
				return nil, fmt.Errorf("catalog: unit %q needs a positive log10ref", e.Name)
			}
			if e.Per != nil {
				ce.per = *e.Per
			}
		case e.Offset != nil || e.Scale != nil:
			ce.kind = kindAffine
			if e.Scale != nil {
				ce.scale = *e.Scale
			}
			if e.Offset != nil {
				ce.offset = *e.Offset
			}
		case e.Factor != nil:
			ce.kind = kindFactor
			ce.factor = *e.Factor
		default:
			ce.kind = kindBase
		}

		c.byName[e.Name] = uint16(len(c.entries))
		c.entries = append(c.entries, ce)
	}
	return c, nil
}

// Ident returns an identifier node for a unit name.
func (c *Catalog) Ident(name string) (*units.Identifier, bool) {
	id, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return units.NewIdentifier(name, id), true
}

// Names lists every unit name in id order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.name
	}
	return out
}

// Install registers the catalog as the process-wide evaluation tables.
func (c *Catalog) Install() { units.Install(c) }

// Base implements units.Tables. Multiplicative units reduce against the
// value itself; affine and logarithmic units divide against one so the
// inverted evaluation is the reduced value.
func (c *Catalog) Base(id uint16, x float64) float64 {
	e := c.entry(id)
	switch e.kind {
	case kindAffine, kindLog:
		return 1
	default:
		return x
	}
}

// Inverted implements units.Tables: the forward map from a value in this
// unit to its base representation.
func (c *Catalog) Inverted(id uint16, x float64) float64 {
	e := c.entry(id)
	switch e.kind {
	case kindFactor:
		return e.factor * x
	case kindAffine:
		return e.scale*x + e.offset
	case kindLog:
		return e.per * math.Log10(x/e.ref)
	default:
		return x
	}
}

// Normal implements units.Tables: the inverse of Inverted, mapping a
// reduced value back into the unit's raw coordinates.
func (c *Catalog) Normal(id uint16, x float64) float64 {
	e := c.entry(id)
	switch e.kind {
	case kindFactor:
		return x / e.factor
	case kindAffine:
		return (x - e.offset) / e.scale
	case kindLog:
		return e.ref * math.Pow(10, x/e.per)
	default:
		return x
	}
}

// Logarithmic implements units.Tables. Affine units count as logarithmic:
// their evaluation is not linear through the origin, so conversion must use
// the ratio directly.
func (c *Catalog) Logarithmic(id uint16) bool {
	k := c.entry(id).kind
	return k == kindAffine || k == kindLog
}

func (c *Catalog) entry(id uint16) *compiled {
	if int(id) >= len(c.entries) {
		panic(fmt.Sprintf("catalog: unknown unit id %d", id))
	}
	return &c.entries[int(id)]
}
