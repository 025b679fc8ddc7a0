package runtime

import (
	"fmt"
	"math"

	"github.com/sambeau/numerobis/pkg/numerobis/errors"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// NumberKind discriminates the two numeric representations.
type NumberKind int

const (
	Int64 NumberKind = iota
	Double
)

// Number is a boxed numeric value carrying its unit tree. The unit is never
// nil; dimensionless numbers carry One. Numbers are immutable.
type Number struct {
	Kind NumberKind
	Int  int64
	Flt  float64
	Unit units.Node
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect renders the number the way echo prints it: the value reduced to
// its target-unit scalar in %g form with six significant digits, followed by
// the printed unit when it is non-empty.
func (n *Number) Inspect() string {
	value := units.Reduce(n.asFloat(), n.Unit)

	out := fmt.Sprintf("%.6g", value)
	if unit := units.Print(n.Unit); unit != "" {
		out += " " + unit
	}
	return out
}

// NewInt boxes an int64 with the given unit. A nil unit means dimensionless.
func NewInt(v int64, unit units.Node) *Number {
	if unit == nil {
		unit = units.NewOne()
	}
	return &Number{Kind: Int64, Int: v, Unit: unit}
}

// NewFloat boxes a float64 with the given unit. A nil unit means
// dimensionless.
func NewFloat(v float64, unit units.Node) *Number {
	if unit == nil {
		unit = units.NewOne()
	}
	return &Number{Kind: Double, Flt: v, Unit: unit}
}

func (n *Number) asFloat() float64 {
	if n.Kind == Int64 {
		return float64(n.Int)
	}
	return n.Flt
}

func (n *Number) isZero() bool {
	if n.Kind == Int64 {
		return n.Int == 0
	}
	return n.Flt == 0
}

func (n *Number) isDimensionless() bool {
	_, ok := n.Unit.(*units.One)
	return ok
}

// opKind selects the unit-derivation rule for a binary operator.
type opKind int

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opPow
	opMod
	opDeltaAdd
	opDeltaSub
)

type binopInt func(a, b int64) int64
type binopFloat func(a, b float64) float64

func iAdd(a, b int64) int64 { return a + b }
func iSub(a, b int64) int64 { return a - b }
func iMul(a, b int64) int64 { return a * b }
func iDiv(a, b int64) int64 {
	if b == 0 {
		errors.Throw(903, nil)
	}
	return a / b
}

// Integer power and modulo route through their floating counterparts and
// truncate back, so results above 2^53 lose precision.
func iPow(a, b int64) int64 { return int64(math.Pow(float64(a), float64(b))) }
func iMod(a, b int64) int64 { return int64(math.Mod(float64(a), float64(b))) }

func fAdd(a, b float64) float64 { return a + b }
func fSub(a, b float64) float64 { return a - b }
func fMul(a, b float64) float64 { return a * b }
func fDiv(a, b float64) float64 { return a / b }
func fPow(a, b float64) float64 { return math.Pow(a, b) }
func fMod(a, b float64) float64 { return math.Mod(a, b) }

// numberBinop is the one arithmetic path for all binary operators: it
// derives the result unit from the operand units, applies the delta
// reduction when asked for, and picks the int or float evaluation from the
// operand kinds.
func numberBinop(a, b *Number, iop binopInt, fop binopFloat, kind opKind) *Number {
	ua, ub := a.Unit, b.Unit
	dimless := a.isDimensionless() && b.isDimensionless()

	var unit units.Node
	var x, y float64
	xDefined, yDefined := false, false

	switch kind {
	case opAdd, opSub, opMod:
		unit = ua

	case opMul:
		if dimless {
			unit = units.NewOne()
		} else {
			unit = units.NewProduct(ua, ub)
		}

	case opDiv:
		if dimless {
			unit = units.NewOne()
		} else {
			unit = units.NewProduct(ua, units.NewPower(ub, units.NewScalar(-1)))
		}

	case opPow:
		// A dimensionless exponent contributes its numeric value to the
		// result unit, so 2m ^ 3 carries m^3. A dimensionless base raised to
		// a dimensionless exponent stays dimensionless.
		switch {
		case b.isDimensionless() && a.isDimensionless():
			unit = ua
		case b.isDimensionless():
			unit = units.NewPower(ua, units.NewScalar(b.asFloat()))
		default:
			unit = units.NewPower(ua, ub)
		}

	case opDeltaAdd, opDeltaSub:
		// Reduce both operands in the left unit's coordinate system, combine
		// the raw scalars, then re-apply the left unit's normal evaluation.
		x = units.Reduce(a.asFloat(), ua)
		y = units.Reduce(b.asFloat(), ua)
		x = fop(x, y)
		y = 0
		x = units.Eval(ua, x, units.EvalNormal)
		xDefined = true
		yDefined = true
		unit = ua
	}

	if a.Kind == Double || b.Kind == Double {
		if !xDefined {
			x = a.asFloat()
		}
		if !yDefined {
			y = b.asFloat()
		}
		return NewFloat(fop(x, y), unit)
	}

	xi, yi := a.Int, b.Int
	if xDefined {
		xi = int64(x)
	}
	if yDefined {
		yi = int64(y)
	}
	return NewInt(iop(xi, yi), unit)
}

func numberAdd(a, b *Number) *Number      { return numberBinop(a, b, iAdd, fAdd, opAdd) }
func numberSub(a, b *Number) *Number      { return numberBinop(a, b, iSub, fSub, opSub) }
func numberMul(a, b *Number) *Number      { return numberBinop(a, b, iMul, fMul, opMul) }
func numberDiv(a, b *Number) *Number      { return numberBinop(a, b, iDiv, fDiv, opDiv) }
func numberPow(a, b *Number) *Number      { return numberBinop(a, b, iPow, fPow, opPow) }
func numberMod(a, b *Number) *Number      { return numberBinop(a, b, iMod, fMod, opMod) }
func numberDeltaAdd(a, b *Number) *Number { return numberBinop(a, b, iAdd, fAdd, opDeltaAdd) }
func numberDeltaSub(a, b *Number) *Number { return numberBinop(a, b, iSub, fSub, opDeltaSub) }

// numberCmp returns the sign of a-b. Units are not consulted; the compiler
// normalizes operands before comparing. Comparisons against NaN yield 0.
func numberCmp(a, b *Number) int {
	if a.Kind == b.Kind {
		if a.Kind == Int64 {
			// no subtraction: the difference can overflow
			switch {
			case a.Int > b.Int:
				return 1
			case a.Int < b.Int:
				return -1
			default:
				return 0
			}
		}
		switch {
		case a.Flt > b.Flt:
			return 1
		case a.Flt < b.Flt:
			return -1
		default:
			return 0
		}
	}

	var iv int64
	var fv float64
	flip := 1
	if a.Kind == Int64 {
		iv, fv = a.Int, b.Flt
	} else {
		iv, fv = b.Int, a.Flt
		flip = -1
	}

	if math.IsNaN(fv) {
		return 0
	}

	diff := float64(iv) - fv
	switch {
	case diff > 0:
		return flip
	case diff < 0:
		return -flip
	default:
		return 0
	}
}

func numberNeg(n *Number) *Number {
	if n.Kind == Int64 {
		return NewInt(-n.Int, n.Unit)
	}
	return NewFloat(-n.Flt, n.Unit)
}

// Convert re-expresses a number in the target unit: the value is reduced
// through its own unit's base and inverted evaluations, then tagged with the
// target. Kind is preserved.
func Convert(v Object, target units.Node) Object {
	n, ok := v.(*Number)
	if !ok {
		panic(fmt.Sprintf("runtime: convert on %s", v.Type()))
	}
	if target == nil {
		target = units.NewOne()
	}

	value := n.asFloat()
	if !n.isDimensionless() {
		base := units.Eval(n.Unit, value, units.EvalBase)
		inv := units.Eval(n.Unit, value, units.EvalInverted)

		ratio := inv / base
		if units.IsLogarithmic(n.Unit) {
			value = ratio
		} else {
			value = value * ratio
		}
	}

	if n.Kind == Int64 {
		return NewInt(int64(value), target)
	}
	return NewFloat(value, target)
}
