// Package expr provides the predicate language used to filter table rows.
//
// A predicate is a boolean expression over the cells of a single row:
// comparisons between column references and literals, combined with
// and/or/not and parentheses. Column references are resolved to column
// numbers at compile time; evaluation then only ever touches a map from
// column number to cell text.
//
// Example usage:
//
//	pred, err := Compile("$name = 'alice' and $2 > 30", resolver, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, err := pred.Eval(row)
package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr
	TokenNot

	// Operators
	TokenEqual        // = or ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals and references
	TokenString
	TokenNumber
	TokenIdent
	TokenColumn // sentinel-prefixed column number, e.g. $2

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )

	// Special
	TokenEOF
	TokenError
)

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Row maps column numbers to cell text for the row under evaluation.
// Absent cells are represented by missing keys and read as empty strings.
type Row map[int]string

// Resolver maps a column identifier to its column number.
type Resolver interface {
	Resolve(name string) (int, bool)
}

// Expr is a compiled predicate evaluated against one row at a time.
type Expr interface {
	Eval(row Row) (bool, error)
}

// Sentinel errors surfaced by Compile and Eval.
var (
	// ErrSyntax is returned when the expression cannot be parsed
	ErrSyntax = errors.New("syntax error in expression")

	// ErrUnknownColumn is returned when an identifier resolves to no column
	ErrUnknownColumn = errors.New("unknown column")

	// ErrSubstitutionLimit is returned when resolving column references
	// would exceed the substitution budget
	ErrSubstitutionLimit = errors.New("substitution limit exceeded")
)

// Operand is one side of a comparison: a column reference or a literal.
type Operand interface {
	value(row Row) string
}

// ColumnOperand reads the cell of a fixed column from the current row
type ColumnOperand struct {
	Column int
}

func (c ColumnOperand) value(row Row) string {
	return row[c.Column]
}

// LiteralOperand carries a fixed literal value
type LiteralOperand struct {
	Text string
}

func (l LiteralOperand) value(Row) string {
	return l.Text
}

// BinaryExpr represents an and/or combination
type BinaryExpr struct {
	Left     Expr
	Operator TokenType // TokenAnd or TokenOr
	Right    Expr
}

// Eval short-circuits: predicates are side-effect free, so skipping the
// right side is not observable.
func (b *BinaryExpr) Eval(row Row) (bool, error) {
	left, err := b.Left.Eval(row)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case TokenAnd:
		if !left {
			return false, nil
		}
	case TokenOr:
		if left {
			return true, nil
		}
	default:
		return false, fmt.Errorf("unsupported binary operator: %v", b.Operator)
	}

	return b.Right.Eval(row)
}

// NotExpr negates its operand
type NotExpr struct {
	Expr Expr
}

func (n *NotExpr) Eval(row Row) (bool, error) {
	v, err := n.Expr.Eval(row)
	if err != nil {
		return false, err
	}
	return !v, nil
}

// ComparisonExpr compares two operands
type ComparisonExpr struct {
	Left     Operand
	Operator TokenType
	Right    Operand
}

func (c *ComparisonExpr) Eval(row Row) (bool, error) {
	return compare(c.Left.value(row), c.Operator, c.Right.value(row))
}

// compare compares two cell texts using the given operator.
//
// When both sides parse as numbers the comparison is numeric, otherwise
// it falls back to byte-wise string comparison. This mirrors how cells
// are stored: opaque text whose numeric meaning is decided per comparison.
func compare(left string, operator TokenType, right string) (bool, error) {
	leftNum, leftErr := strconv.ParseFloat(left, 64)
	rightNum, rightErr := strconv.ParseFloat(right, 64)

	if leftErr == nil && rightErr == nil {
		return compareNumbers(leftNum, operator, rightNum)
	}
	return compareStrings(left, operator, right)
}

// compareNumbers compares two numbers
func compareNumbers(left float64, operator TokenType, right float64) (bool, error) {
	switch operator {
	case TokenEqual:
		return left == right, nil
	case TokenNotEqual:
		return left != right, nil
	case TokenLess:
		return left < right, nil
	case TokenGreater:
		return left > right, nil
	case TokenLessEqual:
		return left <= right, nil
	case TokenGreaterEqual:
		return left >= right, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator: %v", operator)
	}
}

// compareStrings compares two strings (case-sensitive)
func compareStrings(left string, operator TokenType, right string) (bool, error) {
	switch operator {
	case TokenEqual:
		return left == right, nil
	case TokenNotEqual:
		return left != right, nil
	case TokenLess:
		return left < right, nil
	case TokenGreater:
		return left > right, nil
	case TokenLessEqual:
		return left <= right, nil
	case TokenGreaterEqual:
		return left >= right, nil
	default:
		return false, fmt.Errorf("unsupported comparison operator: %v", operator)
	}
}
