package expr

import (
	"fmt"
	"strconv"
)

// Parser builds a predicate from a token stream.
//
// Column identifiers are resolved to column numbers while parsing; every
// resolved reference counts one substitution against the budget. Numeric
// references ($2) already index directly and are free.
type Parser struct {
	tokens        []Token
	pos           int
	resolver      Resolver
	budget        int
	substitutions int
}

// Compile parses input into an evaluable predicate.
//
// budget bounds the number of identifier substitutions performed; an
// expression needing exactly budget substitutions still compiles, one
// needing more fails with ErrSubstitutionLimit.
func Compile(input string, resolver Resolver, budget int) (Expr, error) {
	tokens := Tokenize(input)
	if last := tokens[len(tokens)-1]; last.Type == TokenError {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, last.Value)
	}

	p := &Parser{tokens: tokens, resolver: resolver, budget: budget}

	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Type != TokenEOF {
		return nil, fmt.Errorf("%w: unexpected trailing %q", ErrSyntax, p.current().Value)
	}
	return e, nil
}

// current returns the token at the current position
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// parseOr parses or-expressions (lowest precedence)
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenOr,
			Right:    right,
		}
	}

	return left, nil
}

// parseAnd parses and-expressions (higher precedence than or)
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: TokenAnd,
			Right:    right,
		}
	}

	return left, nil
}

// parseNot parses an optional not prefix
func (p *Parser) parseNot() (Expr, error) {
	if p.current().Type == TokenNot {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: inner}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses a parenthesized expression or a comparison
func (p *Parser) parsePrimary() (Expr, error) {
	if p.current().Type == TokenLeftParen {
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenRightParen {
			return nil, fmt.Errorf("%w: expected closing parenthesis, got %q", ErrSyntax, p.current().Value)
		}
		p.advance()
		return inner, nil
	}

	return p.parseComparison()
}

// parseComparison parses "operand op operand"
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	op := p.current().Type
	switch op {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		p.advance()
	default:
		return nil, fmt.Errorf("%w: expected comparison operator, got %q", ErrSyntax, p.current().Value)
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	return &ComparisonExpr{Left: left, Operator: op, Right: right}, nil
}

// parseOperand parses a column reference or a literal
func (p *Parser) parseOperand() (Operand, error) {
	tok := p.current()

	switch tok.Type {
	case TokenIdent:
		col, err := p.resolveColumn(tok.Value)
		if err != nil {
			return nil, err
		}
		p.advance()
		return ColumnOperand{Column: col}, nil
	case TokenColumn:
		n, err := strconv.Atoi(tok.Value)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: bad column number %q", ErrSyntax, tok.Value)
		}
		p.advance()
		return ColumnOperand{Column: n}, nil
	case TokenNumber, TokenString:
		p.advance()
		return LiteralOperand{Text: tok.Value}, nil
	default:
		return nil, fmt.Errorf("%w: expected column or literal, got %q", ErrSyntax, tok.Value)
	}
}

// resolveColumn maps an identifier to its column number, charging the budget
func (p *Parser) resolveColumn(name string) (int, error) {
	if p.substitutions >= p.budget {
		return 0, fmt.Errorf("%w: budget %d", ErrSubstitutionLimit, p.budget)
	}
	if p.resolver == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	col, ok := p.resolver.Resolve(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	p.substitutions++
	return col, nil
}
