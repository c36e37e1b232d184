package compiler

import "github.com/mna/loxvm/lang/token"

// parseFn is a prefix or infix handler; canAssign is threaded through so
// that only expressions at or below Assignment precedence may consume a
// trailing '='.
type parseFn func(p *Parser, canAssign bool)

type parseRule struct {
	prefix, infix parseFn
	prec          precedence
}

// rules maps each token kind to its prefix handler, infix handler (if any),
// and the precedence to use when that kind appears as an infix operator.
// '?' (ternary) is wired here unconditionally; Options.EnableTernary is
// checked in ternary itself, which reports "Expect expression." at the '?'
// when the extension is disabled.
var rules [64]parseRule

func init() {
	set := func(k token.Kind, prefix, infix parseFn, prec precedence) {
		rules[k] = parseRule{prefix: prefix, infix: infix, prec: prec}
	}

	set(token.LPAREN, (*Parser).grouping, nil, precNone)
	set(token.MINUS, (*Parser).unary, (*Parser).binary, precTerm)
	set(token.PLUS, nil, (*Parser).binary, precTerm)
	set(token.SLASH, nil, (*Parser).binary, precFactor)
	set(token.STAR, nil, (*Parser).binary, precFactor)
	set(token.BANG, (*Parser).unary, nil, precNone)
	set(token.BANG_EQ, nil, (*Parser).binary, precEquality)
	set(token.EQ_EQ, nil, (*Parser).binary, precEquality)
	set(token.GT, nil, (*Parser).binary, precComparison)
	set(token.GT_EQ, nil, (*Parser).binary, precComparison)
	set(token.LT, nil, (*Parser).binary, precComparison)
	set(token.LT_EQ, nil, (*Parser).binary, precComparison)
	set(token.IDENT, (*Parser).variable, nil, precNone)
	set(token.STRING, (*Parser).string, nil, precNone)
	set(token.NUMBER, (*Parser).number, nil, precNone)
	set(token.AND, nil, (*Parser).and, precAnd)
	set(token.OR, nil, (*Parser).or, precOr)
	set(token.FALSE, (*Parser).literal, nil, precNone)
	set(token.NIL, (*Parser).literal, nil, precNone)
	set(token.TRUE, (*Parser).literal, nil, precNone)
	set(token.QMARK, nil, (*Parser).ternary, precTernary)
}

func (p *Parser) rule(k token.Kind) parseRule { return rules[k] }

// parsePrecedence consumes the next expression whose binding power is at
// least prec: one prefix handler, then as many infix handlers as the
// lookahead token's precedence allows.
func (p *Parser) parsePrecedence(prec precedence) {
	p.advance()
	prefix := p.rule(p.previous.Kind).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	prefix(p, canAssign)

	for prec <= p.rule(p.current.Kind).prec {
		p.advance()
		infix := p.rule(p.previous.Kind).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.EQ) {
		p.error("Invalid assignment target.")
	}
}

func (p *Parser) expression() { p.parsePrecedence(precAssignment) }
