package unitlang

import (
	"fmt"
	"strconv"

	"github.com/sambeau/numerobis/pkg/numerobis/catalog"
	"github.com/sambeau/numerobis/pkg/numerobis/runtime"
	"github.com/sambeau/numerobis/pkg/numerobis/units"
)

// MaxDepth bounds expression nesting.
const MaxDepth = 100

// Parser evaluates unitlang expressions directly against the runtime. There
// are no variables or bindings, so no intermediate tree is needed.
type Parser struct {
	l         *Lexer
	cat       *catalog.Catalog
	curToken  Token
	peekToken Token
	depth     int
}

// Eval parses and evaluates one expression against a catalog. The catalog
// must already be installed as the process evaluation tables.
func Eval(input string, cat *catalog.Catalog) (runtime.Object, error) {
	p := NewParser(input, cat)
	return p.Parse()
}

// NewParser creates a parser over input resolving unit names in cat.
func NewParser(input string, cat *catalog.Catalog) *Parser {
	p := &Parser{l: NewLexer(input), cat: cat}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Parse evaluates the whole input as a single expression.
func (p *Parser) Parse() (runtime.Object, error) {
	v, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != EOF {
		return nil, p.errorf("unexpected %s", p.curToken.Type)
	}
	return v, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("column %d: %s", p.curToken.Column, fmt.Sprintf(format, args...))
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf("expression too deeply nested")
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// parseExpression handles +, -, the delta operators, and the conversion
// arrow, all at the lowest precedence level.
func (p *Parser) parseExpression() (runtime.Object, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curToken.Type {
		case PLUS:
			p.nextToken()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = runtime.Add(left, right)

		case MINUS:
			p.nextToken()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = runtime.Sub(left, right)

		case DPLUS:
			p.nextToken()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = runtime.DeltaAdd(left, right)

		case DMINUS:
			p.nextToken()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = runtime.DeltaSub(left, right)

		case ARROW:
			p.nextToken()
			target, err := p.parseUnitExpr()
			if err != nil {
				return nil, err
			}
			// convert in floating point so an affine offset such as
			// 273.15 is not truncated for an integer literal
			left = runtime.Convert(runtime.Float(left, nil), target)

		default:
			return left, nil
		}
	}
}

func (p *Parser) parseTerm() (runtime.Object, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curToken.Type {
		case ASTERISK:
			p.nextToken()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = runtime.Mul(left, right)

		case SLASH:
			p.nextToken()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = runtime.Div(left, right)

		case PERCENT:
			p.nextToken()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = runtime.Mod(left, right)

		default:
			return left, nil
		}
	}
}

// parseFactor handles ^, right-associative.
func (p *Parser) parseFactor() (runtime.Object, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if p.curToken.Type != CARET {
		return base, nil
	}
	p.nextToken()

	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return runtime.Pow(base, exp), nil
}

func (p *Parser) parseUnary() (runtime.Object, error) {
	if p.curToken.Type == MINUS {
		p.nextToken()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return runtime.Neg(v), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (runtime.Object, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.curToken.Type {
	case INT:
		lit := p.curToken.Literal
		p.nextToken()
		unit, err := p.parseUnitSuffix()
		if err != nil {
			return nil, err
		}
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, p.errorf("bad integer literal %q", lit)
		}
		return runtime.NewInt(i, unit), nil

	case FLOAT:
		lit := p.curToken.Literal
		p.nextToken()
		unit, err := p.parseUnitSuffix()
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, p.errorf("bad float literal %q", lit)
		}
		return runtime.NewFloat(f, unit), nil

	case LPAREN:
		p.nextToken()
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.curToken.Type != RPAREN {
			return nil, p.errorf("expected ), got %s", p.curToken.Type)
		}
		p.nextToken()
		return v, nil

	default:
		return nil, p.errorf("expected a number, got %s", p.curToken.Type)
	}
}

// parseUnitSuffix parses the optional unit expression after a numeric
// literal. It stops before a * or / whose right side is not another unit
// name, leaving the operator for the enclosing term.
func (p *Parser) parseUnitSuffix() (units.Node, error) {
	if p.curToken.Type != IDENT {
		return units.NewOne(), nil
	}
	return p.parseUnitProduct()
}

func (p *Parser) parseUnitProduct() (units.Node, error) {
	first, err := p.parseUnitFactor()
	if err != nil {
		return nil, err
	}

	factors := []units.Node{first}
	for {
		if (p.curToken.Type != ASTERISK && p.curToken.Type != SLASH) || p.peekToken.Type != IDENT {
			break
		}
		divide := p.curToken.Type == SLASH
		p.nextToken()

		f, err := p.parseUnitFactor()
		if err != nil {
			return nil, err
		}
		if divide {
			f = units.NewPower(f, units.NewScalar(-1))
		}
		factors = append(factors, f)
	}

	if len(factors) == 1 {
		return factors[0], nil
	}
	return units.NewProduct(factors...), nil
}

func (p *Parser) parseUnitFactor() (units.Node, error) {
	if p.curToken.Type != IDENT {
		return nil, p.errorf("expected a unit name, got %s", p.curToken.Type)
	}

	ident, ok := p.cat.Ident(p.curToken.Literal)
	if !ok {
		return nil, p.errorf("unknown unit %q", p.curToken.Literal)
	}
	p.nextToken()

	if p.curToken.Type != CARET {
		return ident, nil
	}
	p.nextToken()

	negative := false
	if p.curToken.Type == MINUS {
		negative = true
		p.nextToken()
	}
	if p.curToken.Type != INT {
		return nil, p.errorf("expected an integer exponent, got %s", p.curToken.Type)
	}
	exp, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		return nil, p.errorf("bad exponent %q", p.curToken.Literal)
	}
	p.nextToken()

	if negative {
		exp = -exp
	}
	return units.NewPower(ident, units.NewScalar(exp)), nil
}

// parseUnitExpr parses the target of a conversion arrow: a full unit
// product with no literal in front.
func (p *Parser) parseUnitExpr() (units.Node, error) {
	if p.curToken.Type != IDENT {
		return nil, p.errorf("expected a unit after ->, got %s", p.curToken.Type)
	}
	return p.parseUnitProduct()
}
