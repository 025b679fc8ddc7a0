package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Print renders a unit tree as human-readable fraction notation, e.g.
// "m/s^2" or "kg/(m*s^2)". The tree is simplified first; One prints as the
// empty string.
func Print(node Node) string {
	var out strings.Builder
	printNode(Simplify(node), &out)
	return out.String()
}

func isCompound(node Node) bool {
	switch node.(type) {
	case *Sum, *Product, *Neg, *Power:
		return true
	}
	return false
}

func formatScalar(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%g", v)
}

func printNode(node Node, out *strings.Builder) {
	if node == nil {
		return
	}

	switch node := node.(type) {
	case *One:

	case *Scalar:
		out.WriteString(formatScalar(node.Value))

	case *Identifier:
		out.WriteString(node.Name)

	case *Product:
		printProduct(node, out)

	case *Sum:
		for i, child := range node.Values {
			if i > 0 {
				out.WriteString("+")
			}
			printNode(child, out)
		}

	case *Expression:
		out.WriteString("[")
		printNode(node.Value, out)
		out.WriteString("]")

	case *Neg:
		out.WriteString("-")
		parens := isCompound(node.Value)
		if parens {
			out.WriteString("(")
		}
		printNode(node.Value, out)
		if parens {
			out.WriteString(")")
		}

	case *Power:
		printPower(node, out)
	}
}

func printPower(node *Power, out *strings.Builder) {
	base, exp := node.Base, node.Exponent

	// an exponent of scalar 1 or One is not rendered at all
	exponentIsUnity := false
	if s, ok := exp.(*Scalar); ok && s.Value == 1 {
		exponentIsUnity = true
	}
	if _, ok := exp.(*One); ok {
		exponentIsUnity = true
	}
	if exponentIsUnity {
		baseParens := isCompound(base)
		if baseParens {
			out.WriteString("(")
		}
		printNode(base, out)
		if baseParens {
			out.WriteString(")")
		}
		return
	}

	baseParens := isCompound(base)
	expParens := true
	switch exp.(type) {
	case *Scalar, *Identifier:
		expParens = false
	}

	if baseParens {
		out.WriteString("(")
	}
	printNode(base, out)
	if baseParens {
		out.WriteString(")")
	}

	out.WriteString("^")

	if expParens {
		out.WriteString("(")
	}
	printNode(exp, out)
	if expParens {
		out.WriteString(")")
	}
}

// isDenominator reports whether a product child belongs below the fraction
// bar: a power whose exponent is a negative scalar or an explicit negation.
func isDenominator(child Node) bool {
	p, ok := child.(*Power)
	if !ok {
		return false
	}
	if s, ok := p.Exponent.(*Scalar); ok && s.Value < 0 {
		return true
	}
	if _, ok := p.Exponent.(*Neg); ok {
		return true
	}
	return false
}

func printProduct(node *Product, out *strings.Builder) {
	var num, denom []Node

	for _, child := range node.Values {
		if _, ok := child.(*One); ok {
			continue
		}
		if isDenominator(child) {
			denom = append(denom, child)
		} else {
			num = append(num, child)
		}
	}

	if len(num) == 0 {
		// everything sits below the bar (e.g. s^-1), so the numerator is 1
		out.WriteString("1")
	} else {
		for i, child := range num {
			if i > 0 {
				out.WriteString("*")
			}
			_, parens := child.(*Sum)
			if parens {
				out.WriteString("(")
			}
			printNode(child, out)
			if parens {
				out.WriteString(")")
			}
		}
	}

	if len(denom) == 0 {
		return
	}

	out.WriteString("/")

	group := len(denom) > 1
	if group {
		out.WriteString("(")
	}

	for i, child := range denom {
		if i > 0 {
			out.WriteString("*")
		}
		printDenominator(child.(*Power), out)
	}

	if group {
		out.WriteString(")")
	}
}

func printDenominator(p *Power, out *strings.Builder) {
	baseParens := isCompound(p.Base)
	if baseParens {
		out.WriteString("(")
	}
	printNode(p.Base, out)
	if baseParens {
		out.WriteString(")")
	}

	switch exp := p.Exponent.(type) {
	case *Scalar:
		flipped := -exp.Value
		if flipped != 1 {
			out.WriteString("^")
			out.WriteString(formatScalar(flipped))
		}
	case *Neg:
		// x^-y below the bar renders as x^y
		out.WriteString("^")
		parens := isCompound(exp.Value)
		if parens {
			out.WriteString("(")
		}
		printNode(exp.Value, out)
		if parens {
			out.WriteString(")")
		}
	}
}
