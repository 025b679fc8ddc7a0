package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sambeau/numerobis/pkg/numerobis/errors"
)

// The dispatchers below are the uniform call sites the compiler emits.
// Operand type agreement is checked at compile time; a shape these switches
// do not cover is a precondition violation, not a user error, and aborts.

func badOperands(op string, a, b Object) Object {
	panic(fmt.Sprintf("runtime: %s on %s and %s", op, a.Type(), b.Type()))
}

// Add dispatches +: numeric addition or string concatenation.
func Add(a, b Object) Object {
	switch a := a.(type) {
	case *Number:
		return numberAdd(a, b.(*Number))
	case *Str:
		return &Str{Value: a.Value + b.(*Str).Value}
	}
	return badOperands("add", a, b)
}

// Sub dispatches -.
func Sub(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberSub(a, b.(*Number))
	}
	return badOperands("sub", a, b)
}

// Mul dispatches *.
func Mul(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberMul(a, b.(*Number))
	}
	return badOperands("mul", a, b)
}

// Div dispatches /.
func Div(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberDiv(a, b.(*Number))
	}
	return badOperands("div", a, b)
}

// Pow dispatches ^.
func Pow(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberPow(a, b.(*Number))
	}
	return badOperands("pow", a, b)
}

// Mod dispatches %.
func Mod(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberMod(a, b.(*Number))
	}
	return badOperands("mod", a, b)
}

// DeltaAdd dispatches |+|, the unit-preserving addition for affine units.
func DeltaAdd(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberDeltaAdd(a, b.(*Number))
	}
	return badOperands("delta add", a, b)
}

// DeltaSub dispatches |-|.
func DeltaSub(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return numberDeltaSub(a, b.(*Number))
	}
	return badOperands("delta sub", a, b)
}

// Lt dispatches <.
func Lt(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return nativeBool(numberCmp(a, b.(*Number)) < 0)
	}
	return badOperands("lt", a, b)
}

// Le dispatches <=.
func Le(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return nativeBool(numberCmp(a, b.(*Number)) <= 0)
	}
	return badOperands("le", a, b)
}

// Gt dispatches >.
func Gt(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return nativeBool(numberCmp(a, b.(*Number)) > 0)
	}
	return badOperands("gt", a, b)
}

// Ge dispatches >=.
func Ge(a, b Object) Object {
	if a, ok := a.(*Number); ok {
		return nativeBool(numberCmp(a, b.(*Number)) >= 0)
	}
	return badOperands("ge", a, b)
}

// Eq dispatches ==. Values of different variants are never equal.
func Eq(a, b Object) Object {
	switch a := a.(type) {
	case *Number:
		if b, ok := b.(*Number); ok {
			return nativeBool(numberCmp(a, b) == 0)
		}
	case *Str:
		if b, ok := b.(*Str); ok {
			return nativeBool(a.Value == b.Value)
		}
	case *Boolean:
		if b, ok := b.(*Boolean); ok {
			return nativeBool(a.Value == b.Value)
		}
	case *None:
		_, ok := b.(*None)
		return nativeBool(ok)
	}
	return FALSE
}

// Neg dispatches unary minus; kind and unit are preserved.
func Neg(v Object) Object {
	if n, ok := v.(*Number); ok {
		return numberNeg(n)
	}
	panic(fmt.Sprintf("runtime: neg on %s", v.Type()))
}

// Truthy reports the native truth of a value.
func Truthy(v Object) bool {
	switch v := v.(type) {
	case *Number:
		return !v.isZero()
	case *Boolean:
		return v.Value
	case *Str:
		return v.Value != ""
	case *List:
		return len(v.Elements) > 0
	case *None:
		return false
	default:
		return true
	}
}

// Bool boxes Truthy.
func Bool(v Object) Object { return nativeBool(Truthy(v)) }

// Len returns the element count of a list or the rune count of a string.
func Len(v Object) Object {
	switch v := v.(type) {
	case *List:
		return NewInt(int64(len(v.Elements)), nil)
	case *Str:
		return NewInt(int64(len([]rune(v.Value))), nil)
	}
	panic(fmt.Sprintf("runtime: len on %s", v.Type()))
}

// Stringify dispatches string conversion.
func Stringify(v Object) Object {
	return &Str{Value: v.Inspect()}
}

// Int dispatches integer conversion: numbers truncate (keeping their unit);
// strings parse, throwing 301 when the literal is malformed.
func Int(v Object, loc *errors.Location) Object {
	switch v := v.(type) {
	case *Number:
		if v.Kind == Int64 {
			return v
		}
		return NewInt(int64(v.Flt), v.Unit)
	case *Str:
		i, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			errors.Throw(301, loc)
		}
		return NewInt(i, nil)
	case *Boolean:
		if v.Value {
			return NewInt(1, nil)
		}
		return NewInt(0, nil)
	}
	panic(fmt.Sprintf("runtime: int on %s", v.Type()))
}

// Float dispatches float conversion: 302 on a malformed string literal.
func Float(v Object, loc *errors.Location) Object {
	switch v := v.(type) {
	case *Number:
		if v.Kind == Double {
			return v
		}
		return NewFloat(float64(v.Int), v.Unit)
	case *Str:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			errors.Throw(302, loc)
		}
		return NewFloat(f, nil)
	}
	panic(fmt.Sprintf("runtime: float on %s", v.Type()))
}

// GetItem dispatches subscripting. Negative indices wrap; a resolved index
// outside the bounds throws 901 for lists and 902 for strings.
func GetItem(v, idx Object, loc *errors.Location) Object {
	i := indexValue(idx)

	switch v := v.(type) {
	case *List:
		n := normalizeIndex(i, int64(len(v.Elements)))
		if n < 0 {
			errors.Throw(901, loc)
		}
		return v.Elements[n]

	case *Str:
		runes := []rune(v.Value)
		n := normalizeIndex(i, int64(len(runes)))
		if n < 0 {
			errors.Throw(902, loc)
		}
		return &Str{Value: string(runes[n])}
	}
	panic(fmt.Sprintf("runtime: getitem on %s", v.Type()))
}

// GetSlice dispatches slicing. Each bound is a Number or None; None means
// the default for the step's direction. Out-of-range bounds clamp, a zero
// step yields an empty result.
func GetSlice(v, start, stop, step Object) Object {
	switch v := v.(type) {
	case *List:
		s, e, st := normalizeSlice(int64(len(v.Elements)), sliceArg(start), sliceArg(stop), sliceArg(step))
		var out []Object
		for _, i := range sliceIndices(s, e, st) {
			out = append(out, v.Elements[i])
		}
		return &List{Elements: out}

	case *Str:
		runes := []rune(v.Value)
		s, e, st := normalizeSlice(int64(len(runes)), sliceArg(start), sliceArg(stop), sliceArg(step))
		var out strings.Builder
		for _, i := range sliceIndices(s, e, st) {
			out.WriteRune(runes[i])
		}
		return &Str{Value: out.String()}
	}
	panic(fmt.Sprintf("runtime: getslice on %s", v.Type()))
}

func indexValue(idx Object) int64 {
	n, ok := idx.(*Number)
	if !ok {
		panic(fmt.Sprintf("runtime: index of type %s", idx.Type()))
	}
	if n.Kind == Double {
		return int64(n.Flt)
	}
	return n.Int
}

func sliceArg(v Object) int64 {
	if _, ok := v.(*None); ok || v == nil {
		return sliceNone
	}
	return indexValue(v)
}
