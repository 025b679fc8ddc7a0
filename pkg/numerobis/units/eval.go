package units

import (
	"fmt"
	"math"
)

// Mode selects how Identifier nodes are interpreted against the installed
// evaluation tables.
type Mode int

const (
	// EvalNormal applies the unit's own definition to a value already
	// expressed in the unit's reduced form.
	EvalNormal Mode = iota
	// EvalBase reduces a value to its base-dimension magnitude.
	EvalBase
	// EvalInverted applies the forward mapping from a value in this unit to
	// its base representation.
	EvalInverted
)

// Tables is the per-compilation-unit evaluation surface the compiler
// generates for unit identifiers. The runtime treats every entry as an
// opaque pure function keyed by the identifier's id.
type Tables interface {
	Base(id uint16, x float64) float64
	Inverted(id uint16, x float64) float64
	Normal(id uint16, x float64) float64
	Logarithmic(id uint16) bool
}

var tables Tables

// Install sets the process-wide evaluation tables. It is called once at
// startup by the embedding program, before any unit is evaluated.
// Installing twice is a precondition violation and panics, like redefining
// an extern.
func Install(t Tables) {
	if t == nil {
		panic("units: Install(nil)")
	}
	if tables != nil {
		panic("units: evaluation tables already installed")
	}
	tables = t
}

// Installed reports whether evaluation tables have been installed.
func Installed() bool { return tables != nil }

// Eval evaluates a unit tree numerically at x in the given mode. One passes
// x through; products multiply, sums add, powers exponentiate; identifiers
// defer to the installed tables.
func Eval(node Node, x float64, mode Mode) float64 {
	if node == nil {
		return 1
	}

	switch node := node.(type) {
	case *Scalar:
		return node.Value

	case *Sum:
		result := 0.0
		for _, child := range node.Values {
			result += Eval(child, x, mode)
		}
		return result

	case *Product:
		result := 1.0
		for _, child := range node.Values {
			result *= Eval(child, x, mode)
		}
		return result

	case *Expression:
		return Eval(node.Value, x, mode)

	case *Neg:
		return -Eval(node.Value, x, mode)

	case *Power:
		return math.Pow(Eval(node.Base, x, mode), Eval(node.Exponent, x, mode))

	case *One:
		return x

	case *Identifier:
		if tables == nil {
			panic("units: no evaluation tables installed")
		}
		switch mode {
		case EvalBase:
			return tables.Base(node.ID, x)
		case EvalInverted:
			return tables.Inverted(node.ID, x)
		default:
			return tables.Normal(node.ID, x)
		}
	}

	panic(fmt.Sprintf("units: unknown node %T", node))
}

// IsLogarithmic reports whether any identifier in the tree is marked
// logarithmic by the installed tables. Leaves other than identifiers are
// never logarithmic.
func IsLogarithmic(node Node) bool {
	if node == nil {
		return false
	}

	switch node := node.(type) {
	case *Scalar, *One:
		return false

	case *Sum:
		for _, child := range node.Values {
			if IsLogarithmic(child) {
				return true
			}
		}
		return false

	case *Product:
		for _, child := range node.Values {
			if IsLogarithmic(child) {
				return true
			}
		}
		return false

	case *Neg:
		return IsLogarithmic(node.Value)

	case *Expression:
		return IsLogarithmic(node.Value)

	case *Power:
		return IsLogarithmic(node.Base) || IsLogarithmic(node.Exponent)

	case *Identifier:
		if tables == nil {
			panic("units: no evaluation tables installed")
		}
		return tables.Logarithmic(node.ID)
	}

	return false
}

// Reduce lowers a numeric value carrying the given unit to its target-unit
// scalar. Dimensionless values pass through. Logarithmic (and affine) units
// take the inverted/base ratio directly; purely multiplicative units scale
// the value by it.
func Reduce(value float64, unit Node) float64 {
	if unit == nil {
		return value
	}
	if _, ok := unit.(*One); ok {
		return value
	}

	base := Eval(unit, value, EvalBase)
	inv := Eval(unit, value, EvalInverted)
	ratio := inv / base

	if IsLogarithmic(unit) {
		return ratio
	}
	return value * ratio
}
