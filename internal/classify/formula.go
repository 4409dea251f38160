package classify

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ledgercast/ledgercast/internal/common"
)

// EvalFormula evaluates a scheduled-transaction amount formula. Books store
// these as plain arithmetic over decimal literals (e.g. "830,04" or
// "12*69.17"); supported are + - * /, parentheses and unary minus, with
// either "." or "," as the decimal separator. Anything else fails with
// ErrUnsupportedFormula so the caller surfaces the template instead of
// guessing an amount.
func EvalFormula(expr string) (decimal.Decimal, error) {
	p := &formulaParser{input: strings.ReplaceAll(expr, ",", ".")}
	value, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", common.ErrUnsupportedFormula, expr, err)
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: %q: unexpected %q",
			common.ErrUnsupportedFormula, expr, p.input[p.pos:])
	}
	return value, nil
}

type formulaParser struct {
	input string
	pos   int
}

// parseExpr handles + and -.
func (p *formulaParser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

// parseTerm handles * and /.
func (p *formulaParser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("division by zero")
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

// parseFactor handles literals, parentheses and unary minus.
func (p *formulaParser) parseFactor() (decimal.Decimal, error) {
	p.skipSpaces()
	switch {
	case p.peek() == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	default:
		return p.parseNumber()
	}
}

func (p *formulaParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if !unicode.IsDigit(c) && c != '.' {
			break
		}
		p.pos++
	}
	if start == p.pos {
		return decimal.Zero, fmt.Errorf("expected number at offset %d", start)
	}
	value, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *formulaParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *formulaParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
