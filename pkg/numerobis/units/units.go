// Package units implements the algebraic unit expressions attached to
// Numerobis numbers: an immutable tree representation, a normal-form
// simplifier, a three-mode numeric evaluator driven by compiler-supplied
// tables, and a pretty-printer that reconstructs fraction notation.
//
// Trees are built once by compiled code (or by the catalog/unitlang helpers)
// and shared freely afterwards. Nothing in this package mutates a node after
// construction; simplification and evaluation always return fresh values and
// may alias sub-trees of their input.
package units

// Node is one variant of a unit expression tree.
type Node interface {
	unitNode()
}

// One is the dimensionless identity. It behaves as 1 under multiplication
// and is the unit of every plain number.
type One struct{}

// Scalar is a pure numeric factor inside a unit expression, e.g. the 1000
// in "1000*m" or the 273.15 in "K+273.15".
type Scalar struct {
	Value float64
}

// Identifier is a named unit. ID indexes the compiler-generated evaluation
// tables; Name is only used for printing. Two identifiers are the same unit
// iff their IDs match.
type Identifier struct {
	Name string
	ID   uint16
}

// Product is a multiplicative group of factors. An empty product is
// equivalent to Scalar(1). Child order carries no meaning but is preserved
// so printing stays stable.
type Product struct {
	Values []Node
}

// Sum is an additive group of terms, used for affine units such as
// "K+273.15". An empty sum is equivalent to Scalar(0).
type Sum struct {
	Values []Node
}

// Power is base^exponent with arbitrary sub-expressions on both sides.
type Power struct {
	Base     Node
	Exponent Node
}

// Neg is unary negation.
type Neg struct {
	Value Node
}

// Expression is pure grouping, written [x] in unit notation. It simplifies
// away.
type Expression struct {
	Value Node
}

func (*One) unitNode()        {}
func (*Scalar) unitNode()     {}
func (*Identifier) unitNode() {}
func (*Product) unitNode()    {}
func (*Sum) unitNode()        {}
func (*Power) unitNode()      {}
func (*Neg) unitNode()        {}
func (*Expression) unitNode() {}

// NewOne returns the dimensionless identity.
func NewOne() *One { return &One{} }

// NewScalar returns a numeric factor node.
func NewScalar(value float64) *Scalar { return &Scalar{Value: value} }

// NewIdentifier returns a named unit node keyed by its table id.
func NewIdentifier(name string, id uint16) *Identifier {
	return &Identifier{Name: name, ID: id}
}

// NewProduct returns a multiplicative group of the given factors.
func NewProduct(values ...Node) *Product { return &Product{Values: values} }

// NewSum returns an additive group of the given terms.
func NewSum(values ...Node) *Sum { return &Sum{Values: values} }

// NewPower returns base^exponent.
func NewPower(base, exponent Node) *Power {
	return &Power{Base: base, Exponent: exponent}
}

// NewNeg returns the negation of value.
func NewNeg(value Node) *Neg { return &Neg{Value: value} }

// NewExpression returns a grouping node around value.
func NewExpression(value Node) *Expression { return &Expression{Value: value} }

// Equal reports structural equality of two unit trees. Product and Sum
// children compare order-insensitively via one-for-one matching; identifiers
// compare by id. Group widths are tiny in practice, so the O(n²) matching is
// fine.
func Equal(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch a := a.(type) {
	case *One:
		_, ok := b.(*One)
		return ok

	case *Scalar:
		bs, ok := b.(*Scalar)
		return ok && a.Value == bs.Value

	case *Identifier:
		bi, ok := b.(*Identifier)
		return ok && a.ID == bi.ID

	case *Neg:
		bn, ok := b.(*Neg)
		return ok && Equal(a.Value, bn.Value)

	case *Expression:
		be, ok := b.(*Expression)
		return ok && Equal(a.Value, be.Value)

	case *Power:
		bp, ok := b.(*Power)
		return ok && Equal(a.Base, bp.Base) && Equal(a.Exponent, bp.Exponent)

	case *Product:
		bp, ok := b.(*Product)
		return ok && equalUnordered(a.Values, bp.Values)

	case *Sum:
		bs, ok := b.(*Sum)
		return ok && equalUnordered(a.Values, bs.Values)
	}
	return false
}

func equalUnordered(av, bv []Node) bool {
	if len(av) != len(bv) {
		return false
	}

	matched := make([]bool, len(bv))
	for _, a := range av {
		found := false
		for j, b := range bv {
			if !matched[j] && Equal(a, b) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
