package units

import "math"

// Simplify rewrites a unit tree into its normal form: nested groups are
// flattened, scalar factors folded, like bases merge their exponents, like
// sum terms merge their coefficients, and powers distribute over products.
// The result is semantically equivalent to the input under every evaluation
// mode, and simplifying an already-simplified tree returns it unchanged in
// structure. The input is never mutated.
func Simplify(node Node) Node {
	if node == nil {
		return NewOne()
	}
	return doSimplify(node)
}

func doSimplify(node Node) Node {
	switch node := node.(type) {
	case *Expression:
		return doSimplify(node.Value)
	case *Neg:
		return simplifyNeg(node)
	case *Power:
		return simplifyPower(node)
	case *Product:
		return simplifyProduct(node)
	case *Sum:
		return simplifySum(node)
	default:
		return node
	}
}

func simplifyNeg(node *Neg) Node {
	val := doSimplify(node.Value)

	if _, ok := val.(*One); ok {
		return NewScalar(-1)
	}
	if s, ok := val.(*Scalar); ok {
		return NewScalar(-s.Value)
	}
	return NewNeg(val)
}

func simplifyPower(node *Power) Node {
	base := doSimplify(node.Base)
	exp := doSimplify(node.Exponent)

	if s, ok := exp.(*Scalar); ok {
		if s.Value == 0 {
			return NewScalar(1)
		}
		if s.Value == 1 {
			return base
		}
	}
	if _, ok := exp.(*One); ok {
		return base
	}
	if _, ok := base.(*One); ok {
		return NewScalar(1)
	}

	if bs, ok := base.(*Scalar); ok {
		if es, ok := exp.(*Scalar); ok {
			return NewScalar(math.Pow(bs.Value, es.Value))
		}
	}

	// (x^a)^b -> x^(simplify(a*b)), then reduce the new power again.
	if bp, ok := base.(*Power); ok {
		newExp := simplifyProduct(NewProduct(bp.Exponent, exp))
		return simplifyPower(NewPower(bp.Base, newExp))
	}

	// (a*b*...)^n -> a^n * b^n * ...
	if bp, ok := base.(*Product); ok {
		factors := make([]Node, 0, len(bp.Values))
		for _, f := range bp.Values {
			factors = append(factors, NewPower(f, exp))
		}
		return simplifyProduct(NewProduct(factors...))
	}

	return NewPower(base, exp)
}

// flatten simplifies each child, splices children of the same group kind,
// and drops One. One is a unit placeholder rather than the number zero, so
// it is discarded from sums too, exactly as from products.
func flatten(values []Node, product bool) []Node {
	flat := make([]Node, 0, len(values))

	for _, v := range values {
		child := doSimplify(v)

		switch child := child.(type) {
		case *Product:
			if product {
				flat = append(flat, child.Values...)
				continue
			}
		case *Sum:
			if !product {
				flat = append(flat, child.Values...)
				continue
			}
		case *One:
			continue
		}
		flat = append(flat, child)
	}
	return flat
}

func finalize(values []Node, product bool, identity float64) Node {
	if len(values) == 0 {
		return NewScalar(identity)
	}
	if len(values) == 1 {
		return values[0]
	}
	if product {
		return NewProduct(values...)
	}
	return NewSum(values...)
}

func simplifyProduct(node *Product) Node {
	terms := flatten(node.Values, true)

	scalarAcc := 1.0

	// bases[i] has accumulated exponent nodes exps[i]
	var bases []Node
	var exps [][]Node

	for _, term := range terms {
		if s, ok := term.(*Scalar); ok {
			scalarAcc *= s.Value
			continue
		}

		var base, expNode Node
		if p, ok := term.(*Power); ok {
			base = p.Base
			expNode = p.Exponent
		} else {
			base = term
			expNode = NewScalar(1)
		}

		idx := -1
		for j, b := range bases {
			if Equal(b, base) {
				idx = j
				break
			}
		}

		if idx < 0 {
			bases = append(bases, base)
			exps = append(exps, []Node{expNode})
		} else {
			exps[idx] = append(exps[idx], expNode)
		}
	}

	newValues := make([]Node, 0, len(bases)+1)

	if scalarAcc != 1.0 {
		newValues = append(newValues, NewScalar(scalarAcc))
	}

	for i, base := range bases {
		var totalExp Node
		if len(exps[i]) == 1 {
			totalExp = exps[i][0]
		} else {
			totalExp = simplifySum(NewSum(exps[i]...))
		}

		if s, ok := totalExp.(*Scalar); ok {
			if s.Value == 0 {
				continue
			}
			if s.Value == 1 {
				newValues = append(newValues, base)
				continue
			}
		}

		newValues = append(newValues, NewPower(base, totalExp))
	}

	return finalize(newValues, true, 1)
}

// decompose splits a term into a scalar coefficient and the remaining base.
// Products pull out their scalar factors; anything else has coefficient 1.
func decompose(node Node) (float64, Node) {
	p, ok := node.(*Product)
	if !ok {
		return 1, node
	}

	coeff := 1.0
	hadScalar := false
	others := make([]Node, 0, len(p.Values))

	for _, v := range p.Values {
		if s, ok := v.(*Scalar); ok {
			coeff *= s.Value
			hadScalar = true
		} else {
			others = append(others, v)
		}
	}

	if !hadScalar {
		return 1, node
	}

	switch len(others) {
	case 0:
		return coeff, NewOne()
	case 1:
		return coeff, others[0]
	default:
		return coeff, NewProduct(others...)
	}
}

func simplifySum(node *Sum) Node {
	terms := flatten(node.Values, false)

	scalarAcc := 0.0

	var bases []Node
	var coeffs []float64

	for _, term := range terms {
		if s, ok := term.(*Scalar); ok {
			scalarAcc += s.Value
			continue
		}

		coeff, base := decompose(term)

		if _, ok := base.(*One); ok {
			scalarAcc += coeff
			continue
		}

		idx := -1
		for j, b := range bases {
			if Equal(b, base) {
				idx = j
				break
			}
		}

		if idx < 0 {
			bases = append(bases, base)
			coeffs = append(coeffs, coeff)
		} else {
			coeffs[idx] += coeff
		}
	}

	newValues := make([]Node, 0, len(bases)+1)

	if scalarAcc != 0.0 {
		newValues = append(newValues, NewScalar(scalarAcc))
	}

	for i, base := range bases {
		totalCoeff := coeffs[i]

		if totalCoeff == 0 {
			continue
		}
		if totalCoeff == 1 {
			newValues = append(newValues, base)
			continue
		}

		factors := []Node{NewScalar(totalCoeff)}
		if bp, ok := base.(*Product); ok {
			factors = append(factors, bp.Values...)
		} else {
			factors = append(factors, base)
		}
		newValues = append(newValues, NewProduct(factors...))
	}

	return finalize(newValues, false, 0)
}
