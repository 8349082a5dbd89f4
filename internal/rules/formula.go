package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Recursive-descent parser for the restricted formula grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = "-" unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "n" | name "(" expr [ "," expr ] ")" | "(" expr ")"
//
// Only digits, the operators above, parentheses, the variable n, and the
// whitelisted function names are recognized. The expression text is never
// handed to any host-language evaluation facility.

type exprNode interface {
	eval(n float64) float64
}

type numberNode float64

func (v numberNode) eval(float64) float64 { return float64(v) }

type variableNode struct{}

func (variableNode) eval(n float64) float64 { return n }

type unaryNode struct {
	op      byte
	operand exprNode
}

func (u unaryNode) eval(n float64) float64 {
	return -u.operand.eval(n)
}

type binaryNode struct {
	op          byte
	left, right exprNode
}

func (b binaryNode) eval(n float64) float64 {
	l := b.left.eval(n)
	r := b.right.eval(n)
	switch b.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '^':
		return math.Pow(l, r)
	}
	return math.NaN()
}

type callNode struct {
	name string
	args []exprNode
}

func (c callNode) eval(n float64) float64 {
	switch len(c.args) {
	case 1:
		x := c.args[0].eval(n)
		switch c.name {
		case "sqrt":
			return math.Sqrt(x)
		case "abs":
			return math.Abs(x)
		case "log":
			return math.Log10(x)
		case "ln":
			return math.Log(x)
		case "sin":
			return math.Sin(x)
		case "cos":
			return math.Cos(x)
		case "tan":
			return math.Tan(x)
		case "floor":
			return math.Floor(x)
		case "ceil":
			return math.Ceil(x)
		case "round":
			return math.Round(x)
		case "exp":
			return math.Exp(x)
		}
	case 2:
		x := c.args[0].eval(n)
		y := c.args[1].eval(n)
		switch c.name {
		case "min":
			return math.Min(x, y)
		case "max":
			return math.Max(x, y)
		case "pow":
			return math.Pow(x, y)
		}
	}
	return math.NaN()
}

// formulaFunctions maps each approved function name to its arity.
var formulaFunctions = map[string]int{
	"sqrt": 1, "abs": 1, "log": 1, "ln": 1,
	"sin": 1, "cos": 1, "tan": 1,
	"floor": 1, "ceil": 1, "round": 1, "exp": 1,
	"min": 2, "max": 2, "pow": 2,
}

type formulaToken struct {
	kind  byte // 'n' number, 'v' variable, 'f' function, or the operator rune itself
	text  string
	value float64
}

type formulaParser struct {
	tokens []formulaToken
	pos    int
	usesN  bool
}

// parseFormula tokenizes and parses an expression, reporting whether the
// variable n appears.
func parseFormula(expr string) (exprNode, bool, error) {
	tokens, err := tokenizeFormula(expr)
	if err != nil {
		return nil, false, err
	}
	if len(tokens) == 0 {
		return nil, false, ErrEmptyFormula
	}

	p := &formulaParser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}
	if p.pos != len(p.tokens) {
		return nil, false, fmt.Errorf("unexpected token %q", p.tokens[p.pos].text)
	}
	return root, p.usesN, nil
}

func tokenizeFormula(expr string) ([]formulaToken, error) {
	var tokens []formulaToken
	i := 0
	for i < len(expr) {
		ch := expr[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++
		case strings.IndexByte("+-*/^(),", ch) >= 0:
			tokens = append(tokens, formulaToken{kind: ch, text: string(ch)})
			i++
		case ch >= '0' && ch <= '9' || ch == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			v, err := strconv.ParseFloat(expr[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", expr[i:j])
			}
			tokens = append(tokens, formulaToken{kind: 'n', text: expr[i:j], value: v})
			i = j
		case ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z':
			j := i
			for j < len(expr) && (expr[j] >= 'a' && expr[j] <= 'z' || expr[j] >= 'A' && expr[j] <= 'Z') {
				j++
			}
			word := strings.ToLower(expr[i:j])
			if word == "n" {
				tokens = append(tokens, formulaToken{kind: 'v', text: word})
			} else if _, ok := formulaFunctions[word]; ok {
				tokens = append(tokens, formulaToken{kind: 'f', text: word})
			} else {
				return nil, fmt.Errorf("disallowed token %q", expr[i:j])
			}
			i = j
		default:
			return nil, fmt.Errorf("disallowed character %q", ch)
		}
	}
	return tokens, nil
}

func (p *formulaParser) peek() (formulaToken, bool) {
	if p.pos >= len(p.tokens) {
		return formulaToken{}, false
	}
	return p.tokens[p.pos], true
}

func (p *formulaParser) next() (formulaToken, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *formulaParser) expect(kind byte) error {
	tok, ok := p.next()
	if !ok {
		return fmt.Errorf("unexpected end of expression, want %q", kind)
	}
	if tok.kind != kind {
		return fmt.Errorf("unexpected token %q, want %q", tok.text, kind)
	}
	return nil
}

func (p *formulaParser) parseExpr() (exprNode, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != '+' && tok.kind != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.kind, left: left, right: right}
	}
}

func (p *formulaParser) parseTerm() (exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != '*' && tok.kind != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.kind, left: left, right: right}
	}
}

func (p *formulaParser) parseUnary() (exprNode, error) {
	if tok, ok := p.peek(); ok && tok.kind == '-' {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: '-', operand: operand}, nil
	}
	return p.parsePower()
}

func (p *formulaParser) parsePower() (exprNode, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok && tok.kind == '^' {
		p.pos++
		// Right-associative: n^2^3 is n^(2^3).
		exponent, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: '^', left: base, right: exponent}, nil
	}
	return base, nil
}

func (p *formulaParser) parsePrimary() (exprNode, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch tok.kind {
	case 'n':
		return numberNode(tok.value), nil
	case 'v':
		p.usesN = true
		return variableNode{}, nil
	case 'f':
		if err := p.expect('('); err != nil {
			return nil, err
		}
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args := []exprNode{first}
		if next, ok := p.peek(); ok && next.kind == ',' {
			p.pos++
			second, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, second)
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if want := formulaFunctions[tok.text]; len(args) != want {
			return nil, fmt.Errorf("%s takes %d argument(s), got %d", tok.text, want, len(args))
		}
		return callNode{name: tok.text, args: args}, nil
	case '(':
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", tok.text)
	}
}
